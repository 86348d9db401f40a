package commands

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/leapstack-labs/jspy/internal/cli/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpsCommand_Table(t *testing.T) {
	isolateEnv(t, "json")

	stdout, _, err := testutil.ExecuteCommand(t, NewOpsCommand())
	require.NoError(t, err)

	var infos []OpInfo
	require.NoError(t, json.Unmarshal([]byte(stdout), &infos))
	require.Len(t, infos, 8)
	assert.Equal(t, OpInfo{Operator: "!", Python: "not ", Source: "table"}, infos[0])
	for _, info := range infos {
		assert.Equal(t, "table", info.Source)
	}
}

func TestOpsCommand_Lookup(t *testing.T) {
	isolateEnv(t, "json")

	stdout, _, err := testutil.ExecuteCommand(t, NewOpsCommand(), "===", "typeof", "+")
	require.NoError(t, err)

	var infos []OpInfo
	require.NoError(t, json.Unmarshal([]byte(stdout), &infos))
	assert.Equal(t, []OpInfo{
		{Operator: "===", Python: "is", Source: "table"},
		{Operator: "typeof", Python: "ty", Source: "fallback"},
		{Operator: "+", Python: "+", Source: "fallback"},
	}, infos)
}

func TestOpsCommand_Markdown(t *testing.T) {
	isolateEnv(t, "markdown")

	stdout, _, err := testutil.ExecuteCommand(t, NewOpsCommand())
	require.NoError(t, err)

	assert.Contains(t, stdout, "# Operators")
	assert.Contains(t, stdout, `| && | "and" | table |`)
	assert.Contains(t, stdout, `"not "`)
	testutil.AssertNoANSI(t, stdout)
}

func TestOpsCommand_Text(t *testing.T) {
	isolateEnv(t, "text")

	stdout, _, err := testutil.ExecuteCommand(t, NewOpsCommand(), "instanceof")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Operator lookup")
	assert.Contains(t, stdout, "instanceof")
	assert.Contains(t, stdout, `"in"`)
	assert.Contains(t, stdout, "fallback")
}
