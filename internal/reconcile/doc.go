// Package reconcile decides, for every roster entry and activity, whether a
// verifiable submission exists.
//
// Reconciliation runs in two steps. First every claim is matched against the
// roster independently: an entry matches when its normalized key is a
// substring of the claim's normalized content, and each match yields a
// per-claim verdict (Verified when neither the claimed student number nor the
// claimed room code contradicts the roster, Flagged otherwise). Second the
// verdict events are folded into cells with Merge, which takes the higher
// verdict. Merge is associative and commutative, so the result does not
// depend on claim order and rooms can be folded on separate workers: no
// matching ever crosses rooms.
package reconcile
