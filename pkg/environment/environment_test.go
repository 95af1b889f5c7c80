package environment

import (
	"path/filepath"
	"testing"

	"github.com/fis-platform/fis-launcher/pkg/errors"
	"github.com/fis-platform/fis-launcher/pkg/messages"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvironment_Provided(t *testing.T) {
	t.Parallel()

	providedEnv := &Environment{Debug: "1"}
	env, err := NewEnvironment(providedEnv)
	require.NoError(t, err)
	assert.True(t, env.IsDebug())
	assert.Equal(t, "tests.py", env.TestModule, "Expected default test module")
	assert.NotSame(t, providedEnv, env)
}

func TestNewEnvironment_FromOS(t *testing.T) {
	t.Setenv("DEBUG", "1")
	t.Setenv("FIS_TEST_MODULE", "")
	t.Setenv("FIS_TEST_RUNNER", "/usr/local/bin/pytest")

	env, err := NewEnvironment(nil)
	require.NoError(t, err)
	assert.True(t, env.IsDebug())
	assert.Equal(t, "tests.py", env.TestModule)
	assert.Equal(t, "/usr/local/bin/pytest", env.TestRunner)
}

func TestNewEnvironment_ModuleOverride(t *testing.T) {
	t.Setenv("FIS_TEST_MODULE", "suite/tests.py")

	env, err := NewEnvironment(nil)
	require.NoError(t, err)
	assert.Equal(t, "suite/tests.py", env.TestModule)
}

func TestNewEnvironment_RejectsEscapingModule(t *testing.T) {
	t.Parallel()

	for _, module := range []string{"/etc/tests.py", "../tests.py", ".."} {
		_, err := NewEnvironment(&Environment{TestModule: module})
		require.Error(t, err, module)
		assert.True(t, errors.HasErrorCode(err, errors.ErrEnvironment))
	}
}

func TestReadDotEnv(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	dir := "/opt/fis"
	require.NoError(t, fs.MkdirAll(dir, 0o755))

	// Missing file
	pairs, err := ReadDotEnv(fs, dir)
	require.NoError(t, err)
	assert.Empty(t, pairs)

	content := "# settings\nGEMINI_API_KEY=abc123\nDATABASE_PATH=\"data/legal.db\"\n"
	require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, ".env"), []byte(content), 0o644))

	pairs, err = ReadDotEnv(fs, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"DATABASE_PATH=data/legal.db", "GEMINI_API_KEY=abc123"}, pairs)
}

func TestReadDotEnv_Invalid(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/opt/fis/.env", []byte("KEY=\"unterminated\n"), 0o644))

	_, err := ReadDotEnv(fs, "/opt/fis")
	require.Error(t, err)
	assert.True(t, errors.HasErrorCode(err, errors.ErrEnvironment))
	assert.Contains(t, err.Error(), messages.MsgEnvFileInvalid)
}

func TestNewEnvironment_DebugDefaultsOff(t *testing.T) {
	t.Setenv("DEBUG", "")

	env, err := NewEnvironment(nil)
	require.NoError(t, err)
	assert.False(t, env.IsDebug())
}
