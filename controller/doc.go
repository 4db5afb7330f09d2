// Package controller maps marker ids to host surface handles and drives
// their cross-fade animations.
//
// A Controller owns, per marker id, the descriptor last applied, the host
// handles created for it and at most one running anim.Session. Lifecycle
// calls and Advance must come from one goroutine; Loop provides such a
// goroutine with a ticker.
package controller
