package virtualbox

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webosose/webos-emulator/hypervisor"
	"github.com/webosose/webos-emulator/inventory"
	"github.com/webosose/webos-emulator/types"
	"github.com/webosose/webos-emulator/vbox"
)

func TestCreateRefusesRunningDevice(t *testing.T) {
	r := newFakeRunner().
		on("list vms", listLine("ose", "1")).
		on("list runningvms", listLine("ose", "1"))
	vb := newTestVB(t, r)

	err := vb.Create(context.Background(), types.NewDevice("ose"))
	assert.ErrorIs(t, err, hypervisor.ErrRunning)
	assert.Empty(t, r.mutations())
}

func TestCreateSequence(t *testing.T) {
	r := newFakeRunner()
	vb := newTestVB(t, r)
	vd := types.NewDevice("ose_475")
	vd.RAM = 2048

	require.NoError(t, vb.Create(context.Background(), vd))
	assert.Equal(t, []string{
		"createvm --ostype Linux_64 --register --name ose_475",
		"storagectl ose_475 --add ide --name ose_475",
		"modifyvm ose_475 --boot1 disk --boot2 none --boot3 none --boot4 none",
		"modifyvm ose_475 --memory 2048 --vram 128 --ioapic on --cpus 2",
		"modifyvm ose_475 --graphicscontroller vmsvga",
		"modifyvm ose_475 --accelerate3d on",
		"modifyvm ose_475 --mouse usbtablet --audio pulse --audioout on --audioin on",
		"modifyvm ose_475 --nic1 nat --natpf1 ssh,tcp,,6622,,22",
		"modifyvm ose_475 --natpf1 web-inspector,tcp,,9998,,9998",
		"modifyvm ose_475 --natpf1 enact-browser-web-inspector,tcp,,9223,,9999",
		"modifyvm ose_475 --uart1 0x3f8 4 --uartmode1 file /dev/null",
		"modifyvm ose_475 --monitorcount 2",
		"setextradata ose_475 GUI/ScaleFactor 0.7",
		"setextradata ose_475 wemul ose",
	}, r.mutations())
}

func TestCreateUsesPlatformTable(t *testing.T) {
	r := newFakeRunner()
	vb := newTestVB(t, r)
	vb.goos = "windows"

	require.NoError(t, vb.Create(context.Background(), types.NewDevice("ose")))
	assert.True(t, r.called("modifyvm ose --mouse usbtablet --audio dsound --audioout on --audioin on"))
	assert.True(t, r.called("modifyvm ose --uart1 0x3f8 4 --uartmode1 file null"))
}

func TestCreateReplacesStoppedDevice(t *testing.T) {
	r := newFakeRunner().
		on("list vms", listLine("ose", "1"))
	vb := newTestVB(t, r)

	require.NoError(t, vb.Create(context.Background(), types.NewDevice("ose")))
	muts := r.mutations()
	require.GreaterOrEqual(t, len(muts), 3)
	assert.Equal(t, "storageattach ose --storagectl ose --type hdd --medium emptydrive --port 0 --device 0", muts[0])
	assert.Equal(t, "unregistervm ose --delete", muts[1])
	assert.Equal(t, "createvm --ostype Linux_64 --register --name ose", muts[2])
}

func TestCreateAbortsOnStepFailure(t *testing.T) {
	r := newFakeRunner().fail("modifyvm ose --graphicscontroller")
	vb := newTestVB(t, r)

	err := vb.Create(context.Background(), types.NewDevice("ose"))
	var cmdErr *vbox.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.False(t, r.called("modifyvm ose --accelerate3d on"))
}

func TestCreateRemovesDeviceWhenAttachFails(t *testing.T) {
	r := newFakeRunner().
		on("list vms", "", listLine("ose", "1")).
		fail("storageattach ose --storagectl ose --type hdd --port 0 --device 0 --medium /img/ose.vmdk")
	vb := newTestVB(t, r)
	vd := types.NewDevice("ose")
	vd.Image = "/img/ose.vmdk"

	err := vb.Create(context.Background(), vd)
	require.Error(t, err)
	assert.True(t, r.called("unregistervm ose --delete"))
}

func TestStartGenericDevice(t *testing.T) {
	r := newFakeRunner().on("list vms", listLine("ose", "1"))
	vb := newTestVB(t, r)

	require.NoError(t, vb.Start(context.Background(), types.NewDevice("ose")))
	assert.Equal(t, []string{"startvm ose"}, r.mutations())
}

func TestStartRunningDeviceIsNoop(t *testing.T) {
	r := newFakeRunner().
		on("list vms", listLine("ose", "1")).
		on("list runningvms", listLine("ose", "1"))
	vb := newTestVB(t, r)

	require.NoError(t, vb.Start(context.Background(), types.NewDevice("ose")))
	assert.Empty(t, r.mutations())
}

func TestStartMissingDevice(t *testing.T) {
	vb := newTestVB(t, newFakeRunner())

	err := vb.Start(context.Background(), types.NewDevice("ose"))
	assert.ErrorIs(t, err, hypervisor.ErrNotFound)
}

func TestStartTVWithoutSDK(t *testing.T) {
	const name = "LG webOS TV Emulator 5.0"
	r := newFakeRunner().on("list vms", listLine(name, "1"))
	vb := newTestVB(t, r)
	vd := types.NewDevice(name)
	vd.Product, vd.Version = types.ProductTV, "5.0"

	err := vb.Start(context.Background(), vd)
	require.ErrorIs(t, err, hypervisor.ErrLauncherMissing)
	assert.Contains(t, err.Error(), "please check installation of TV Emulator")
	assert.Empty(t, r.mutations())
	for _, c := range r.calls {
		assert.Equal(t, "VBoxManage", c.Name)
	}
}

func TestStartTVMissingLauncher(t *testing.T) {
	const name = "LG webOS TV Emulator 5.0"
	r := newFakeRunner().on("list vms", listLine(name, "1"))
	vb := newTestVB(t, r)
	home := t.TempDir()
	vb.lookupEnv = func(string) (string, bool) { return home, true }
	vd := types.NewDevice(name)
	vd.Product, vd.Version = types.ProductTV, "5.0"

	err := vb.Start(context.Background(), vd)
	assert.ErrorIs(t, err, hypervisor.ErrLauncherMissing)
}

func TestStartSignageLaunchesScript(t *testing.T) {
	const name = "LG webOS SIGNAGE Emulator 2.1"
	r := newFakeRunner().on("list vms", listLine(name, "1"))
	vb := newTestVB(t, r)
	home := t.TempDir()
	script := filepath.Join(home, "Emulator", "v2.1", "LG_webOS_SIGNAGE_Emulator.sh")
	writeFile(t, script)
	vb.lookupEnv = func(key string) (string, bool) {
		if key == "LG_WEBOS_SIGNAGE_SDK_HOME" {
			return home, true
		}
		return "", false
	}
	vd := types.NewDevice(name)
	vd.Product, vd.Version = types.ProductSignage, "2.1"

	require.NoError(t, vb.Start(context.Background(), vd))
	last := r.calls[len(r.calls)-1]
	assert.Equal(t, script, last.Name)
	assert.True(t, last.Detach)
	assert.Empty(t, r.mutations())
}

func TestLauncherCommandByPlatform(t *testing.T) {
	tv := launchers[types.ProductTV]

	cmd, path := tv.command("windows", "C:/sdk", "6.0")
	assert.Equal(t, "cmd", cmd.Name)
	assert.Equal(t, []string{"/C", "LG_webOS_TV_Emulator.bat"}, cmd.Args)
	assert.Equal(t, filepath.Join("C:/sdk", "Emulator", "v6.0", "LG_webOS_TV_Emulator.bat"), path)

	cmd, path = tv.command("darwin", "/sdk", "6.0")
	assert.Equal(t, "open", cmd.Name)
	assert.Equal(t, []string{path}, cmd.Args)
	assert.Equal(t, filepath.Join("/sdk", "Emulator", "v6.0", "LG_webOS_TV_Emulator_RCU.app"), path)

	cmd, path = tv.command("linux", "/sdk", "6.0")
	assert.Equal(t, path, cmd.Name)
	assert.True(t, cmd.Detach)
}

func TestStopRunningDevice(t *testing.T) {
	r := newFakeRunner().
		on("list vms", listLine("ose", "1")).
		on("list runningvms", listLine("ose", "1"))
	vb := newTestVB(t, r)

	require.NoError(t, vb.Stop(context.Background(), types.NewDevice("ose")))
	assert.Equal(t, []string{"controlvm ose pause", "controlvm ose poweroff"}, r.mutations())
}

func TestStopPauseFailureSkipsPowerOff(t *testing.T) {
	r := newFakeRunner().
		on("list vms", listLine("ose", "1")).
		on("list runningvms", listLine("ose", "1")).
		fail("controlvm ose pause")
	vb := newTestVB(t, r)

	require.Error(t, vb.Stop(context.Background(), types.NewDevice("ose")))
	assert.False(t, r.called("controlvm ose poweroff"))
}

func TestStopStoppedDevice(t *testing.T) {
	r := newFakeRunner().on("list vms", listLine("ose", "1"))
	vb := newTestVB(t, r)

	err := vb.Stop(context.Background(), types.NewDevice("ose"))
	assert.ErrorIs(t, err, hypervisor.ErrNotRunning)
	assert.Empty(t, r.mutations())
}

func TestDeleteRefusesRunningDevice(t *testing.T) {
	r := newFakeRunner().
		on("list vms", listLine("ose", "1")).
		on("list runningvms", listLine("ose", "1"))
	vb := newTestVB(t, r)

	err := vb.Delete(context.Background(), types.NewDevice("ose"))
	assert.ErrorIs(t, err, hypervisor.ErrRunning)
	assert.False(t, r.called("unregistervm ose --delete"))
}

func TestDeleteStoppedDevice(t *testing.T) {
	r := newFakeRunner().
		on("list vms", listLine("ose", "1")).
		on("showvminfo ose", vmInfo("IDE", inventory.GuestLinux64))
	vb := newTestVB(t, r)

	require.NoError(t, vb.Delete(context.Background(), types.NewDevice("ose")))
	assert.Equal(t, []string{
		"storageattach ose --storagectl IDE --type hdd --medium emptydrive --port 0 --device 0",
		"unregistervm ose --delete",
	}, r.mutations())
}

func TestDeleteDetachFailure(t *testing.T) {
	r := newFakeRunner().
		on("list vms", listLine("ose", "1")).
		fail("storageattach ose")
	vb := newTestVB(t, r)

	err := vb.Delete(context.Background(), types.NewDevice("ose"))
	var detachErr *hypervisor.DetachError
	require.True(t, errors.As(err, &detachErr))
	assert.Equal(t, "ose", detachErr.Name)
	var cmdErr *vbox.CommandError
	assert.ErrorAs(t, err, &cmdErr)
	assert.False(t, r.called("unregistervm ose --delete"))
}

func TestRemoveUnregisteredIsNoop(t *testing.T) {
	r := newFakeRunner()
	vb := newTestVB(t, r)

	require.NoError(t, vb.Remove(context.Background(), "ose"))
	assert.Empty(t, r.mutations())
}

func TestModifyWithoutChangesOnlyReads(t *testing.T) {
	r := newFakeRunner().on("showvminfo ose", vmInfo("ose", inventory.GuestLinux64))
	vb := newTestVB(t, r)

	settings, err := vb.Modify(context.Background(), types.NewDevice("ose"), &types.Modification{})
	require.NoError(t, err)
	assert.Empty(t, r.mutations())
	require.Len(t, settings, 7)
	for i, key := range []string{"Name:", "Guest OS:", "Memory size:", "VRAM size:", "Number of CPUs:", "Monitor count:", "ose (0, 0):"} {
		assert.True(t, strings.HasPrefix(settings[i], key), settings[i])
	}
}

func TestModifyAppliesInOneCall(t *testing.T) {
	r := newFakeRunner().
		on("showvminfo ose", vmInfo("ose", inventory.GuestLinux64)).
		on("showvminfo ose_new", vmInfo("ose_new", inventory.GuestLinux64))
	vb := newTestVB(t, r)

	mod := &types.Modification{RAM: 2048, CPUs: 4, Name: "ose_new", DiskFile: "/img/new.vmdk"}
	settings, err := vb.Modify(context.Background(), types.NewDevice("ose"), mod)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"modifyvm ose --memory 2048 --cpus 4 --name ose_new",
		"storageattach ose_new --storagectl ose --type hdd --port 0 --device 0 --medium /img/new.vmdk",
	}, r.mutations())
	require.NotEmpty(t, settings)
	assert.True(t, strings.HasSuffix(settings[0], "ose_new"), settings[0])
}

func TestModifyRefusesRunningDevice(t *testing.T) {
	r := newFakeRunner().on("list runningvms", listLine("ose", "1"))
	vb := newTestVB(t, r)

	_, err := vb.Modify(context.Background(), types.NewDevice("ose"), &types.Modification{RAM: 1024})
	assert.ErrorIs(t, err, hypervisor.ErrRunning)
	assert.Empty(t, r.mutations())
}

func TestModifyFailureSkipsReadBack(t *testing.T) {
	r := newFakeRunner().fail("modifyvm ose")
	vb := newTestVB(t, r)

	_, err := vb.Modify(context.Background(), types.NewDevice("ose"), &types.Modification{RAM: 1024})
	require.Error(t, err)
	assert.Equal(t, 1, countPrefix(r.lines(), "showvminfo"))
}

func TestRestoreDefaultsResetsNATRules(t *testing.T) {
	r := newFakeRunner().
		on("list vms", listLine("ose", "1")).
		fail("modifyvm ose --nic1 nat --natpf1 delete")
	vb := newTestVB(t, r)

	require.NoError(t, vb.RestoreDefaults(context.Background(), types.NewDevice("ose")))
	muts := r.mutations()
	assert.Contains(t, muts, "modifyvm ose --nic1 nat --natpf1 delete ssh")
	assert.Contains(t, muts, "modifyvm ose --nic1 nat --natpf1 ssh,tcp,,6622,,22")
	assert.Equal(t, "setextradata ose wemul ose", muts[len(muts)-1])
	assert.False(t, r.called("createvm --ostype Linux_64 --register --name ose"))
}

func TestRestoreDefaultsRefusesRunningDevice(t *testing.T) {
	r := newFakeRunner().
		on("list vms", listLine("ose", "1")).
		on("list runningvms", listLine("ose", "1"))
	vb := newTestVB(t, r)

	err := vb.RestoreDefaults(context.Background(), types.NewDevice("ose"))
	assert.ErrorIs(t, err, hypervisor.ErrRunning)
	assert.Empty(t, r.mutations())
}

func TestHiddenCreateAttachesDiskFirst(t *testing.T) {
	r := newFakeRunner().on("list vms", listLine("ose", "1"))
	vb := newTestVB(t, r)
	vd := types.NewDevice("ose")
	vd.DiskFile = "/img/ose.vmdk"
	vd.MonitorCount = 1
	vd.ScaleFactor = 1.5

	require.NoError(t, vb.HiddenCreate(context.Background(), vd))
	muts := r.mutations()
	assert.Equal(t, []string{
		"storagectl ose --add ide --name ose",
		"modifyvm ose --boot1 disk --boot2 none --boot3 none --boot4 none",
		"storageattach ose --storagectl ose --type hdd --port 0 --device 0 --medium /img/ose.vmdk",
	}, muts[:3])
	assert.Contains(t, muts, "modifyvm ose --monitorcount 1")
	assert.Contains(t, muts, "setextradata ose GUI/ScaleFactor 1.5")
}

func TestImportRefusesExistingDevice(t *testing.T) {
	r := newFakeRunner().on("list vms", listLine("ose", "1"))
	vb := newTestVB(t, r)

	err := vb.Import(context.Background(), types.NewDevice("ose"), "/img/ose.ova")
	assert.ErrorIs(t, err, hypervisor.ErrExists)
	assert.Empty(t, r.mutations())
}

func TestImportRenamesController(t *testing.T) {
	r := newFakeRunner().on("showvminfo ose", vmInfo("IDE Controller", inventory.GuestLinux64))
	vb := newTestVB(t, r)

	require.NoError(t, vb.Import(context.Background(), types.NewDevice("ose"), "/img/ose.ova"))
	assert.Equal(t, []string{
		"import /img/ose.ova --vsys 0 --vmname ose",
		"modifyvm ose --boot1 disk --boot2 none --boot3 none --boot4 none",
		"storagectl ose --name IDE Controller --rename ose",
	}, r.mutations())
}

func TestImportReportsSuccessfulAttachAsFailure(t *testing.T) {
	vb := newTestVB(t, newFakeRunner())
	vd := types.NewDevice("ose")
	vd.Image = "/img/ose.vmdk"

	err := vb.Import(context.Background(), vd, "/img/ose.ova")
	assert.ErrorIs(t, err, hypervisor.ErrImportAttach)
}

func TestImportIgnoresFailedAttach(t *testing.T) {
	r := newFakeRunner().fail("storageattach ose")
	vb := newTestVB(t, r)
	vd := types.NewDevice("ose")
	vd.Image = "/img/ose.vmdk"

	assert.NoError(t, vb.Import(context.Background(), vd, "/img/ose.ova"))
}

func TestAttachDefaultsControllerToDeviceName(t *testing.T) {
	r := newFakeRunner()
	vb := newTestVB(t, r)

	require.NoError(t, vb.Attach(context.Background(), "ose", "/img/ose.vmdk"))
	assert.Equal(t, []string{
		"storageattach ose --storagectl ose --type hdd --port 0 --device 0 --medium /img/ose.vmdk",
	}, r.mutations())
}

func countPrefix(lines []string, prefix string) int {
	n := 0
	for _, l := range lines {
		if strings.HasPrefix(l, prefix) {
			n++
		}
	}
	return n
}
