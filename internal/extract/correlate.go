package extract

import "github.com/custodia-labs/dashreport/internal/core/domain"

// membership places a license holder on one policy.
type membership struct {
	policy    int
	startTerm string
}

// Correlation is the outcome of correlating start terms across policies.
type Correlation struct {
	// Policies are new records; the input is not modified.
	Policies []domain.Policy

	// GroupSize is the number of policies the license holder is on.
	GroupSize int
}

// Correlate assigns each policy's start_of_earliest_term from the
// license holder's operator records. Policies are assumed to appear in
// document order, and each policy after the first in the group takes
// the original start term of the policy before it. Operator lists in
// the result keep only the license holder.
//
// When dln is empty no policy matches: every operator list is empty and
// every start_of_earliest_term is "".
func Correlate(policies []domain.Policy, dln string) Correlation {
	return correlate(policies, dln, NopTracer{})
}

func correlate(policies []domain.Policy, dln string, tr Tracer) Correlation {
	groups := groupByLicense(policies)
	group := groups[dln]
	if dln == "" {
		group = nil
	}
	assigned := shiftTerms(group)

	out := make([]domain.Policy, len(policies))
	for i, p := range policies {
		term, member := assigned[i]
		out[i] = rebuildPolicy(p, dln, term, member)
		tr.Trace("correlator", "start_of_earliest_term",
			"policy", i, "member", member, "value", out[i].Header.StartOfEarliestTerm)
	}
	return Correlation{Policies: out, GroupSize: len(assigned)}
}

// groupByLicense maps each license number to its operator records in
// document order. A license listed twice on one policy has two entries.
func groupByLicense(policies []domain.Policy) map[string][]membership {
	groups := make(map[string][]membership)
	for i, p := range policies {
		for _, op := range p.Operators {
			key := domain.Deref(op.DLN)
			if key == "" {
				continue
			}
			groups[key] = append(groups[key], membership{policy: i, startTerm: domain.Deref(op.StartTerm)})
		}
	}
	return groups
}

// shiftTerms computes the normalised term for every member policy from
// the original values. The first member keeps its own term; member i
// takes the original term of member i-1. A later entry for the same
// policy overwrites an earlier one.
func shiftTerms(group []membership) map[int]string {
	originals := make([]string, len(group))
	for i, m := range group {
		originals[i] = m.startTerm
	}

	assigned := make(map[int]string, len(group))
	for i, m := range group {
		src := originals[i]
		if i > 0 {
			src = originals[i-1]
		}
		assigned[m.policy] = normalizeTerm(src)
	}
	return assigned
}

func normalizeTerm(s string) string {
	if s == "" {
		return ""
	}
	return NormalizeDate(s)
}

// rebuildPolicy copies p with its operators filtered to dln. Retained
// operators carry the correlated start term.
func rebuildPolicy(p domain.Policy, dln, term string, member bool) domain.Policy {
	h := p.Header
	h.StartOfEarliestTerm = ""
	if member {
		h.StartOfEarliestTerm = term
	}

	ops := []domain.Operator{}
	for _, op := range p.Operators {
		if dln == "" || domain.Deref(op.DLN) != dln {
			continue
		}
		if member {
			op.StartTerm = nil
			if term != "" {
				op.StartTerm = ptr(term)
			}
		}
		ops = append(ops, op)
	}

	vehicles := append([]domain.Vehicle{}, p.Vehicles...)
	return domain.Policy{Header: h, Operators: ops, Vehicles: vehicles, Raw: p.Raw}
}
