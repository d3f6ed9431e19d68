package output

import (
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/kidcost/kidcost/internal/domain"
)

func intToString(v int) string { return strconv.Itoa(v) }

// FormatJSON renders the full snapshot as indented JSON.
func FormatJSON(snap *domain.LedgerSnapshot) ([]byte, error) {
	return json.MarshalIndent(snap, "", "  ")
}

// FormatProfileJSON renders a profile as indented JSON.
func FormatProfileJSON(profile *domain.Profile) ([]byte, error) {
	return json.MarshalIndent(profile, "", "  ")
}
