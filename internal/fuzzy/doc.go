// Package fuzzy implements a small Mamdani inference engine over
// piecewise-linear membership functions.
//
// # Model
//
// A [Variable] couples a [Domain] (a closed numeric range sampled on a fixed
// grid) with an ordered list of labelled [Term] values. Variables play one of
// two roles: antecedents are read from the caller's inputs, consequents are
// produced by inference.
//
// A [Rule] maps an antecedent [Expr] (a tree of Pred, And and Or nodes) to one
// label per consequent it constrains. Rules are assembled with [RuleBuilder],
// which resolves every variable and term reference against a [Registry] when the
// rule is built, so inference never encounters a dangling name.
//
// # Inference
//
// [Engine.Infer] evaluates every rule that constrains the requested output:
//
//	strength  = Fire(antecedent, inputs)           (min for And, max for Or)
//	clipped_r = min(strength, μ_term(y))            for y on the output grid
//	aggregate = max over r of clipped_r(y)
//	value     = Σ y·aggregate(y) / Σ aggregate(y)   (centroid)
//
// A zero aggregate mass is reported as a [*NoApplicableRuleError] rather than
// defaulted. All values in this package are immutable once constructed and are
// safe for concurrent use without locking.
package fuzzy
