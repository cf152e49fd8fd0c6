package install

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/boardci/internal/arduino/mocks"
	"github.com/thoreinstein/boardci/internal/console"
	"github.com/thoreinstein/boardci/internal/errors"
	"github.com/thoreinstein/boardci/internal/logging"
	"github.com/thoreinstein/boardci/internal/metadata"
	"github.com/thoreinstein/boardci/internal/platform"
	"github.com/thoreinstein/boardci/internal/runner"
)

func ok() *runner.Result { return &runner.Result{ExitCode: 0} }

func failed(stderr string) *runner.Result {
	return &runner.Result{ExitCode: 1, Stderr: stderr}
}

func newTestInstaller(t *testing.T) (*Installer, *mocks.MockToolClient, *bytes.Buffer) {
	t.Helper()
	tool := mocks.NewMockToolClient(t)
	var buf bytes.Buffer
	return NewInstaller(tool, console.NewPlain(&buf), logging.ForTest(t)), tool, &buf
}

func TestInstallPlatform_TruncatesFQBN(t *testing.T) {
	inst, tool, buf := newTestInstaller(t)
	tool.EXPECT().InstallPlatform(mock.Anything, "rakwireless:nrf52").Return(ok(), nil).Once()

	err := inst.InstallPlatform(t.Context(), platform.FQBN("rakwireless:nrf52:WisCoreRAK4631Board:softdevice=s140v6,debug=l0"))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Installing platform: rakwireless:nrf52")
}

func TestInstallPlatform_FailureIsFatal(t *testing.T) {
	inst, tool, _ := newTestInstaller(t)
	tool.EXPECT().InstallPlatform(mock.Anything, "esp32:esp32").Return(failed("platform not found"), nil).Once()

	err := inst.InstallPlatform(t.Context(), platform.FQBN("esp32:esp32:featheresp32:FlashFreq=80"))
	require.Error(t, err)
	assert.Equal(t, errors.ExitSystem, errors.ExitCode(err))
	assert.Contains(t, err.Error(), "FAILED to install esp32:esp32")
	assert.Contains(t, err.Error(), "platform not found")
}

func TestUpdateIndex(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		inst, tool, _ := newTestInstaller(t)
		tool.EXPECT().UpdateIndex(mock.Anything).Return(ok(), nil).Once()
		require.NoError(t, inst.UpdateIndex(t.Context()))
	})

	t.Run("repeat calls are not special-cased", func(t *testing.T) {
		inst, tool, _ := newTestInstaller(t)
		tool.EXPECT().UpdateIndex(mock.Anything).Return(ok(), nil).Times(2)
		require.NoError(t, inst.UpdateIndex(t.Context()))
		require.NoError(t, inst.UpdateIndex(t.Context()))
	})

	t.Run("failure is fatal", func(t *testing.T) {
		inst, tool, _ := newTestInstaller(t)
		tool.EXPECT().UpdateIndex(mock.Anything).Return(failed("dial tcp: timeout"), nil).Once()

		err := inst.UpdateIndex(t.Context())
		require.Error(t, err)
		var ce *runner.CommandError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, "Failed to update core index\ndial tcp: timeout", ce.Error())
	})
}

func TestInstallDependencies_ContinuesAfterFailure(t *testing.T) {
	inst, tool, buf := newTestInstaller(t)
	deps := []metadata.Dependency{
		{Name: "LibA", Version: ">=1.2.0"},
		{Name: "LibB"},
		{Name: "LibC"},
	}
	tool.EXPECT().InstallLibrary(mock.Anything, "LibA@>=1.2.0").Return(failed("no such version"), nil).Once()
	tool.EXPECT().InstallLibrary(mock.Anything, "LibB").Return(nil, errors.New("exec: arduino-cli not found")).Once()
	tool.EXPECT().InstallLibrary(mock.Anything, "LibC").Return(ok(), nil).Once()

	failures, err := inst.InstallDependencies(t.Context(), deps)
	require.NoError(t, err)
	require.Len(t, failures, 2)

	assert.Equal(t, "LibA", failures[0].Dependency.Name)
	assert.Equal(t, 1, failures[0].ExitCode)
	assert.Contains(t, failures[0].Output, "no such version")

	assert.Equal(t, "LibB", failures[1].Dependency.Name)
	assert.Equal(t, -1, failures[1].ExitCode)
	assert.Contains(t, failures[1].Output, "not found")

	out := buf.String()
	assert.Contains(t, out, "Installing dependency: LibA@>=1.2.0")
	assert.Contains(t, out, "Error installing dependency: LibA with version >=1.2.0")
	assert.Contains(t, out, "Error installing dependency: LibB with version any")
	assert.Contains(t, out, "Installing dependency: LibC")
}

func TestInstallDependencies_None(t *testing.T) {
	inst, _, buf := newTestInstaller(t)

	failures, err := inst.InstallDependencies(t.Context(), nil)
	require.NoError(t, err)
	assert.Empty(t, failures)
	assert.Empty(t, buf.String())
}

func TestInstallDependencies_Cancelled(t *testing.T) {
	inst, _, _ := newTestInstaller(t)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := inst.InstallDependencies(ctx, []metadata.Dependency{{Name: "LibA"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
