package access

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jwalitptl/medrec-api/internal/model"
)

func session(role model.Role) *model.Session {
	return &model.Session{UserID: uuid.New(), Username: "someone", Role: role}
}

func TestDecideAny(t *testing.T) {
	d := DecideAny(nil)
	assert.Equal(t, RedirectLogin, d.Kind)
	assert.Equal(t, "/login", d.Target)

	for _, role := range []model.Role{model.RoleAdmin, model.RoleDoctor, model.RolePatient} {
		d := DecideAny(session(role))
		assert.Equal(t, Allow, d.Kind, "role %s", role)
	}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name     string
		session  *model.Session
		required model.Role
		want     DecisionKind
		target   string
	}{
		{"no session", nil, model.RoleAdmin, RedirectLogin, "/login"},
		{"matching role", session(model.RoleDoctor), model.RoleDoctor, Allow, ""},
		{"doctor entering patient area", session(model.RoleDoctor), model.RolePatient, RedirectRoleHome, "/doctor"},
		{"patient entering admin area", session(model.RolePatient), model.RoleAdmin, RedirectRoleHome, "/patient"},
		{"admin entering doctor area", session(model.RoleAdmin), model.RoleDoctor, RedirectRoleHome, "/admin"},
		{"unrecognized role", session(model.Role("intern")), model.RoleDoctor, RedirectLogin, "/login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(tt.session, tt.required)
			assert.Equal(t, tt.want, d.Kind)
			assert.Equal(t, tt.target, d.Target)
		})
	}
}

func TestDecideRedirectTargetsSessionRole(t *testing.T) {
	// The redirect always points at the session's own home, never the
	// area it tried to enter.
	for _, role := range []model.Role{model.RoleAdmin, model.RoleDoctor, model.RolePatient} {
		for _, required := range []model.Role{model.RoleAdmin, model.RoleDoctor, model.RolePatient} {
			if role == required {
				continue
			}
			d := Decide(session(role), required)
			assert.Equal(t, RedirectRoleHome, d.Kind)
			assert.Equal(t, role.Home(), d.Target)
		}
	}
}
