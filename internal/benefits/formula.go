package benefits

import "github.com/shopspring/decimal"

// The formula extension point is a small typed AST over a fixed whitelist of
// named profile fields. There is no string parsing and no way to evaluate
// caller-supplied code: expressions are built from these types only.

// Operand names one whitelisted profile field.
type Operand int

const (
	OperandMotherEarnedIncome Operand = iota
	OperandHouseholdIncome
	OperandChildOrder
)

// Env supplies operand values for one evaluation.
type Env struct {
	MotherEarnedIncome decimal.Decimal
	HouseholdIncome    decimal.Decimal
	ChildOrder         int
}

func (env Env) lookup(op Operand) decimal.Decimal {
	switch op {
	case OperandMotherEarnedIncome:
		return env.MotherEarnedIncome
	case OperandHouseholdIncome:
		return env.HouseholdIncome
	case OperandChildOrder:
		return decimal.NewFromInt(int64(env.ChildOrder))
	}
	return decimal.Zero
}

// Expr is a node in the formula AST.
type Expr interface {
	Eval(env Env) decimal.Decimal
}

// Lit is a constant amount.
type Lit struct{ Value decimal.Decimal }

func (l Lit) Eval(Env) decimal.Decimal { return l.Value }

// Ref reads a whitelisted operand.
type Ref struct{ Operand Operand }

func (r Ref) Eval(env Env) decimal.Decimal { return env.lookup(r.Operand) }

// BinaryOp is the fixed operator set.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
)

// Binary applies an operator to two sub-expressions.
type Binary struct {
	Op   BinaryOp
	L, R Expr
}

func (b Binary) Eval(env Env) decimal.Decimal {
	l, r := b.L.Eval(env), b.R.Eval(env)
	switch b.Op {
	case OpAdd:
		return l.Add(r)
	case OpSub:
		return l.Sub(r)
	case OpMul:
		return l.Mul(r)
	}
	return decimal.Zero
}

// Min takes the lesser of two sub-expressions, used to cap formula results.
type Min struct{ L, R Expr }

func (m Min) Eval(env Env) decimal.Decimal {
	return decimal.Min(m.L.Eval(env), m.R.Eval(env))
}
