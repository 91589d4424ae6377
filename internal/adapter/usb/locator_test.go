//go:build unit

package usb

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"modem-rotatord/internal/adapter/infrastructure/file"
	"modem-rotatord/internal/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fakeSysfs lays out a minimal USB device registry under a temp directory.
func fakeSysfs(t *testing.T, devices map[string]map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, attrs := range devices {
		devicePath := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(devicePath, 0755))
		for attr, value := range attrs {
			require.NoError(t, os.WriteFile(filepath.Join(devicePath, attr), []byte(value), 0644))
		}
	}
	return root
}

func TestNewLocator(t *testing.T) {
	locator := NewLocator(file.NewManagerAdapter(), nil)
	assert.NotNil(t, locator)
	assert.Equal(t, DefaultSysfsRoot, locator.sysfsRoot)
}

func TestLocator_Locate(t *testing.T) {
	files := file.NewManagerAdapter()

	t.Run("MatchingDevice", func(t *testing.T) {
		root := fakeSysfs(t, map[string]map[string]string{
			"1-1": {"idVendor": "1d6b\n", "idProduct": "0002\n", "authorized": "1\n"},
			"1-2": {"idVendor": "1e0e\n", "idProduct": "9001\n", "authorized": "1\n"},
		})
		locator := NewLocatorWithRoot(files, nil, root)

		devicePath, err := locator.Locate("1e0e", "9001")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "1-2"), devicePath)
	})

	t.Run("NoSuchDevice", func(t *testing.T) {
		root := fakeSysfs(t, map[string]map[string]string{
			"1-1": {"idVendor": "1d6b\n", "idProduct": "0002\n", "authorized": "1\n"},
		})
		locator := NewLocatorWithRoot(files, nil, root)

		_, err := locator.Locate("1e0e", "9001")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrDeviceNotFound))
	})

	t.Run("VendorMatchesProductDoesNot", func(t *testing.T) {
		root := fakeSysfs(t, map[string]map[string]string{
			"1-1": {"idVendor": "1e0e\n", "idProduct": "9011\n", "authorized": "1\n"},
		})
		locator := NewLocatorWithRoot(files, nil, root)

		_, err := locator.Locate("1e0e", "9001")
		assert.True(t, errors.Is(err, ErrDeviceNotFound))
	})

	t.Run("SkipsDeviceWithoutAuthorizedFile", func(t *testing.T) {
		root := fakeSysfs(t, map[string]map[string]string{
			"1-1": {"idVendor": "1e0e\n", "idProduct": "9001\n"},
			"1-2": {"idVendor": "1e0e\n", "idProduct": "9001\n", "authorized": "1\n"},
		})
		locator := NewLocatorWithRoot(files, nil, root)

		devicePath, err := locator.Locate("1e0e", "9001")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "1-2"), devicePath)
	})

	t.Run("EmptyRegistry", func(t *testing.T) {
		locator := NewLocatorWithRoot(files, nil, t.TempDir())

		_, err := locator.Locate("1e0e", "9001")
		assert.True(t, errors.Is(err, ErrDeviceNotFound))
	})

	t.Run("UnreadableVendorFileIsSkipped", func(t *testing.T) {
		root := fakeSysfs(t, map[string]map[string]string{
			"1-2": {"idVendor": "1e0e\n", "idProduct": "9001\n", "authorized": "1\n"},
		})
		// A directory named idVendor cannot be read as a file
		require.NoError(t, os.MkdirAll(filepath.Join(root, "1-1", "idVendor"), 0755))
		locator := NewLocatorWithRoot(files, nil, root)

		devicePath, err := locator.Locate("1e0e", "9001")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "1-2"), devicePath)
	})
}

func TestLocator_Detect(t *testing.T) {
	ctx := context.Background()

	t.Run("KnownModemPresent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		runner := mock.NewMockCommandRunner(ctrl)
		runner.EXPECT().Run(gomock.Any(), gomock.Any(), "lsusb").Return([]byte(
			"Bus 001 Device 002: ID 2109:3431 VIA Labs, Inc. Hub\n"+
				"Bus 001 Device 004: ID 1e0e:9001 Qualcomm / Option SimTech SIM7600 Series\n"), nil)
		locator := NewLocator(file.NewManagerAdapter(), runner)

		vendorID, productID, err := locator.Detect(ctx)
		require.NoError(t, err)
		assert.Equal(t, "1e0e", vendorID)
		assert.Equal(t, "9001", productID)
	})

	t.Run("MatchIsCaseInsensitive", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		runner := mock.NewMockCommandRunner(ctrl)
		runner.EXPECT().Run(gomock.Any(), gomock.Any(), "lsusb").Return([]byte(
			"Bus 001 Device 003: ID 05c6:9025 Qualcomm, Inc. modem\n"), nil)
		locator := NewLocator(file.NewManagerAdapter(), runner)

		vendorID, productID, err := locator.Detect(ctx)
		require.NoError(t, err)
		assert.Equal(t, "05c6", vendorID)
		assert.Equal(t, "9025", productID)
	})

	t.Run("NoModemPresent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		runner := mock.NewMockCommandRunner(ctrl)
		runner.EXPECT().Run(gomock.Any(), gomock.Any(), "lsusb").Return([]byte(
			"Bus 001 Device 002: ID 2109:3431 VIA Labs, Inc. Hub\n"), nil)
		locator := NewLocator(file.NewManagerAdapter(), runner)

		_, _, err := locator.Detect(ctx)
		assert.True(t, errors.Is(err, ErrDeviceNotFound))
	})

	t.Run("LsusbFails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		runner := mock.NewMockCommandRunner(ctrl)
		runner.EXPECT().Run(gomock.Any(), gomock.Any(), "lsusb").Return(nil, errors.New("lsusb failed: exit status 1"))
		locator := NewLocator(file.NewManagerAdapter(), runner)

		_, _, err := locator.Detect(ctx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to list usb devices")
	})
}
