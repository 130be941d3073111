// Package access decides whether a session may enter a role-gated area.
// Decide is a pure function of the session and the requirement so that
// every branch is trivially unit-testable.
package access

import (
	"github.com/jwalitptl/medrec-api/internal/model"
)

type DecisionKind string

const (
	Allow            DecisionKind = "allow"
	RedirectLogin    DecisionKind = "redirect_login"
	RedirectRoleHome DecisionKind = "redirect_role_home"
)

// Decision carries the verdict and, for redirects, the target path.
type Decision struct {
	Kind   DecisionKind
	Target string
}

const loginPath = "/login"

// DecideAny admits any authenticated session regardless of role.
func DecideAny(session *model.Session) Decision {
	if session == nil {
		return Decision{Kind: RedirectLogin, Target: loginPath}
	}
	return Decision{Kind: Allow}
}

// Decide admits the session only if it holds the required role. A session
// with a different but recognized role is sent to its own role home; an
// unrecognized role falls back to login.
func Decide(session *model.Session, required model.Role) Decision {
	if session == nil {
		return Decision{Kind: RedirectLogin, Target: loginPath}
	}
	if session.Role == required {
		return Decision{Kind: Allow}
	}
	if !session.Role.Valid() {
		return Decision{Kind: RedirectLogin, Target: loginPath}
	}
	return Decision{Kind: RedirectRoleHome, Target: session.Role.Home()}
}
