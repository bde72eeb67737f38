package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/orris-inc/tenantdesk/internal/domain/access"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

func TestEnforcer_DefaultMatrix(t *testing.T) {
	log := logger.NewNop()
	e, err := NewMemoryEnforcer(log)
	require.NoError(t, err)
	require.NoError(t, InitDefaultPermissions(e, log))

	tests := []struct {
		role     access.Role
		resource access.Resource
		action   access.Action
		want     bool
	}{
		{access.RoleRootAdmin, access.ResourceReseller, access.ActionCreate, true},
		{access.RoleRootAdmin, access.ResourceServicePackage, access.ActionDelete, true},
		{access.RoleDepartmentAdmin, access.ResourceDepartmentUser, access.ActionCreate, true},
		{access.RoleDepartmentAdmin, access.ResourceDepartmentAdmin, access.ActionCreate, false},
		{access.RoleDepartmentAdmin, access.ResourceDepartment, access.ActionRead, true},
		{access.RoleResellerAdmin, access.ResourceResellerCustomer, access.ActionCreate, true},
		{access.RoleResellerAdmin, access.ResourceServiceAccess, access.ActionCreate, false},
		{access.RoleMember, access.ResourceDepartment, access.ActionRead, true},
		{access.RoleMember, access.ResourceSubscription, access.ActionRead, false},
		{access.RoleUser, access.ResourceServicePackage, access.ActionRead, true},
		{access.RoleUser, access.ResourceServicePackage, access.ActionCreate, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.resource)+"/"+string(tt.action), func(t *testing.T) {
			ok, err := e.Enforce(string(tt.role), string(tt.resource), string(tt.action))
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestEnforcer_PersistedPolicies(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	log := logger.NewNop()
	e, err := NewEnforcer(gdb, log)
	require.NoError(t, err)
	require.NoError(t, InitDefaultPermissions(e, log))
	// running twice must not fail on existing rules
	require.NoError(t, InitDefaultPermissions(e, log))

	require.NoError(t, e.AddPolicy(string(access.RoleMember), string(access.ResourceTransaction), string(access.ActionRead)))

	reloaded, err := NewEnforcer(gdb, log)
	require.NoError(t, err)

	ok, err := reloaded.Enforce(string(access.RoleMember), string(access.ResourceTransaction), string(access.ActionRead))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = reloaded.Enforce(string(access.RoleDepartmentAdmin), string(access.ResourceDepartment), string(access.ActionRead))
	require.NoError(t, err)
	assert.True(t, ok, "inheritance survives a reload")

	require.NoError(t, reloaded.RemovePolicy(string(access.RoleMember), string(access.ResourceTransaction), string(access.ActionRead)))
	ok, err = reloaded.Enforce(string(access.RoleMember), string(access.ResourceTransaction), string(access.ActionRead))
	require.NoError(t, err)
	assert.False(t, ok)
}
