package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/constant"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
)

func TestGateRootHasAnyScope(t *testing.T) {
	root := Principal{ID: midentifier.New(), Role: mmodel.RoleRoot}
	otherOwner := midentifier.New()

	err := Gate(root, VerbDelete, ResourceSpace, &otherOwner)

	assert.NoError(t, err)
}

func TestGateUserAllowedOnOwnRow(t *testing.T) {
	caller := Principal{ID: midentifier.New(), Role: mmodel.RoleUser}

	err := Gate(caller, VerbUpdate, ResourceSpace, &caller.ID)

	assert.NoError(t, err)
}

func TestGateUserDeniedOnForeignRow(t *testing.T) {
	caller := Principal{ID: midentifier.New(), Role: mmodel.RoleUser}
	otherOwner := midentifier.New()

	err := Gate(caller, VerbUpdate, ResourceSpace, &otherOwner)

	assert.Error(t, err)
	assert.IsType(t, constant.PermissionError{}, err)
}

func TestGateNilOwnerAllowedForOwnScope(t *testing.T) {
	caller := Principal{ID: midentifier.New(), Role: mmodel.RoleUser}

	err := Gate(caller, VerbCreate, ResourceSpace, nil)

	assert.NoError(t, err)
}

func TestEffectiveOwnerDefaultsToCaller(t *testing.T) {
	caller := Principal{ID: midentifier.New(), Role: mmodel.RoleUser}

	owner, err := EffectiveOwner(caller, ResourceSpace, nil)

	assert.NoError(t, err)
	assert.Equal(t, caller.ID, owner)
}

func TestEffectiveOwnerUserCannotDeclareForeignOwner(t *testing.T) {
	caller := Principal{ID: midentifier.New(), Role: mmodel.RoleUser}
	declared := midentifier.New()

	_, err := EffectiveOwner(caller, ResourceSpace, &declared)

	assert.Error(t, err)
}

func TestEffectiveOwnerRootCanDeclareForeignOwner(t *testing.T) {
	caller := Principal{ID: midentifier.New(), Role: mmodel.RoleRoot}
	declared := midentifier.New()

	owner, err := EffectiveOwner(caller, ResourceSpace, &declared)

	assert.NoError(t, err)
	assert.Equal(t, declared, owner)
}

func TestListScopeRootSeesEverything(t *testing.T) {
	root := Principal{ID: midentifier.New(), Role: mmodel.RoleRoot}

	filter, err := ListScope(root, ResourceSpace)

	assert.NoError(t, err)
	assert.Nil(t, filter)
}

func TestListScopeUserFilteredToOwnRows(t *testing.T) {
	caller := Principal{ID: midentifier.New(), Role: mmodel.RoleUser}

	filter, err := ListScope(caller, ResourceSpace)

	assert.NoError(t, err)
	assert.NotNil(t, filter)
	assert.Equal(t, caller.ID, *filter)
}
