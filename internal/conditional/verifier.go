package conditional

// Verifier decides whether a presented proof satisfies a condition
// commitment. The matching policy is deliberately injected: the gate only
// owns the single-execution invariant, never the cryptography.
type Verifier interface {
	Verify(commitment, proof string) bool
}

// AcceptAllVerifier accepts any non-empty proof. It reproduces the
// permissive policy of the original deployment; swap in a real verifier
// before trusting commitments with funds.
//
// TODO: replace with a hash-preimage verifier once the attestation
// service settles on a commitment format.
type AcceptAllVerifier struct{}

func (AcceptAllVerifier) Verify(commitment, proof string) bool {
	return proof != ""
}
