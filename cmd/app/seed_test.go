package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeedAdminCommand_RejectsWeakPassword(t *testing.T) {
	t.Setenv(adminPasswordEnv, "short")
	cmd := seedAdminCommand(new(string))
	cmd.SetArgs([]string{"--email", "root@depot.test"})

	err := cmd.ExecuteContext(context.Background())

	assert.ErrorContains(t, err, "invalid admin account")
}

func TestSeedAdminCommand_RequiresEmail(t *testing.T) {
	t.Setenv(adminPasswordEnv, "forklift9")
	cmd := seedAdminCommand(new(string))
	cmd.SetArgs([]string{})

	assert.Error(t, cmd.ExecuteContext(context.Background()))
}
