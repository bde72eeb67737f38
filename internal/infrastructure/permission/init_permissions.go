package permission

import (
	"fmt"

	"github.com/orris-inc/tenantdesk/internal/domain/access"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

// InitDefaultPermissions makes sure every default rule is present. Rules an
// operator added stay untouched; existing rules are skipped.
func InitDefaultPermissions(e *Enforcer, log logger.Interface) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	added := 0
	for _, p := range access.DefaultPolicies() {
		ok, err := e.enforcer.AddPolicy(string(p.Role), p.Resource, p.Action)
		if err != nil {
			log.Errorw("failed to add permission policy",
				"error", err,
				"role", p.Role,
				"resource", p.Resource,
				"action", p.Action)
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w", p.Role, p.Resource, p.Action, err)
		}
		if ok {
			added++
		}
	}

	for _, g := range access.DefaultInheritance() {
		ok, err := e.enforcer.AddGroupingPolicy(string(g.Role), string(g.Inherits))
		if err != nil {
			return fmt.Errorf("failed to add role inheritance [%s, %s]: %w", g.Role, g.Inherits, err)
		}
		if ok {
			added++
		}
	}

	log.Infow("permission policies initialized", "added", added)
	return nil
}
