package valuestore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/ini.v1"

	"github.com/dshills/canconfig/internal/attribute"
)

const cfgData = `canid=101
node_number=5432
start_event_id=2
node_mode=1
`

// cfgWithSections mirrors the layout on a real CANPi: device values in the
// unnamed section, network settings owned by other services below.
const cfgWithSections = cfgData + `[network]
router_ssid = home
router_passwd = 123456
[apmode]
ap_ssid = canpi
ap_passwd = 654321
`

func testSet() attribute.Set {
	return attribute.Set{
		"canid":          {Prompt: "CAN Id", Current: "100", Default: "100", Format: "[0-9]{1,4}", Action: attribute.BehaviourDisplay},
		"node_number":    {Prompt: "Node Number", Current: "4321", Default: "4321", Format: "[0-9]{1,4}", Action: attribute.BehaviourDisplay},
		"start_event_id": {Prompt: "Start Event Id", Current: "1", Default: "1", Format: "[0-9]{1,2}", Action: attribute.BehaviourEdit},
		"node_mode":      {Current: "0", Default: "0", Format: "[0-9]{1,2}", Action: attribute.BehaviourHide},
	}
}

func writeFile(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "canpi.cfg")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestReconcile(t *testing.T) {
	set := testSet()
	unknown, err := New().Reconcile(set, writeFile(t, cfgData))
	require.NoError(t, err)
	assert.Empty(t, unknown)

	assert.Equal(t, "101", set["canid"].Current)
	assert.Equal(t, "5432", set["node_number"].Current)
	assert.Equal(t, "2", set["start_event_id"].Current)
	assert.Equal(t, "1", set["node_mode"].Current)

	// Only Current changes; everything else is preserved.
	assert.Equal(t, "Start Event Id", set["start_event_id"].Prompt)
	assert.Equal(t, "1", set["start_event_id"].Default)
	assert.Equal(t, attribute.BehaviourEdit, set["start_event_id"].Action)
}

func TestReconcilePartialStore(t *testing.T) {
	set := testSet()
	_, err := New().Reconcile(set, writeFile(t, "canid=101\n"))
	require.NoError(t, err)

	assert.Equal(t, "101", set["canid"].Current)
	// Keys absent from the store keep their pre-reconciliation value.
	assert.Equal(t, "4321", set["node_number"].Current)
}

func TestReconcileUnknownKeyTolerated(t *testing.T) {
	set := testSet()
	unknown, err := New().Reconcile(set, writeFile(t, cfgData+"mystery=7\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"mystery"}, unknown)
	_, exists := set["mystery"]
	assert.False(t, exists, "unknown keys must not be added to the set")
}

func TestReconcileIdempotent(t *testing.T) {
	path := writeFile(t, cfgData)
	store := New()

	once := testSet()
	_, err := store.Reconcile(once, path)
	require.NoError(t, err)

	twice := testSet()
	_, err = store.Reconcile(twice, path)
	require.NoError(t, err)
	_, err = store.Reconcile(twice, path)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestReconcileIgnoresNamedSections(t *testing.T) {
	set := testSet()
	set["router_ssid"] = attribute.Attribute{Current: "none", Action: attribute.BehaviourHide}

	unknown, err := New().Reconcile(set, writeFile(t, cfgWithSections))
	require.NoError(t, err)

	// router_ssid lives in [network]; the unnamed section does not see it.
	assert.Equal(t, "none", set["router_ssid"].Current)
	assert.Empty(t, unknown)
}

func TestReconcileNamedSection(t *testing.T) {
	set := attribute.Set{
		"router_ssid": {Current: "", Action: attribute.BehaviourEdit},
	}

	_, err := New(WithSection("network")).Reconcile(set, writeFile(t, cfgWithSections))
	require.NoError(t, err)
	assert.Equal(t, "home", set["router_ssid"].Current)
}

func TestReconcileMissingFile(t *testing.T) {
	set := testSet()
	_, err := New().Reconcile(set, filepath.Join(t.TempDir(), "absent.cfg"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotExist)

	// The set is untouched on failure.
	assert.Equal(t, testSet(), set)
}

func TestWriteNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canpi.cfg")
	set := testSet()

	require.NoError(t, New().Write(set, path, false))

	cfg, err := ini.Load(path)
	require.NoError(t, err)
	sec := cfg.Section(ini.DefaultSection)
	assert.Equal(t, "100", sec.Key("canid").String())
	assert.Equal(t, "4321", sec.Key("node_number").String())
	assert.Equal(t, "1", sec.Key("start_event_id").String())
	assert.Equal(t, "0", sec.Key("node_mode").String())

	// Only key=current pairs are written, nothing from the metadata.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Start Event Id")
	assert.NotContains(t, string(data), "[0-9]")
}

func TestWriteSortedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canpi.cfg")
	require.NoError(t, New().Write(testSet(), path, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var keys []string
	for _, line := range strings.Split(string(data), "\n") {
		if k, _, ok := strings.Cut(line, "="); ok {
			keys = append(keys, strings.TrimSpace(k))
		}
	}
	assert.Equal(t, []string{"canid", "node_mode", "node_number", "start_event_id"}, keys)
}

func TestWritePreservesForeignSections(t *testing.T) {
	path := writeFile(t, cfgWithSections)

	set := testSet()
	set["canid"] = attribute.Attribute{Current: "999", Action: attribute.BehaviourDisplay}
	require.NoError(t, New().Write(set, path, false))

	cfg, err := ini.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "999", cfg.Section(ini.DefaultSection).Key("canid").String())
	assert.Equal(t, "home", cfg.Section("network").Key("router_ssid").String())
	assert.Equal(t, "canpi", cfg.Section("apmode").Key("ap_ssid").String())
}

func TestWriteWithBackup(t *testing.T) {
	path := writeFile(t, cfgData)
	dir := filepath.Dir(path)

	require.NoError(t, New().Write(testSet(), path, true))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var backups []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".bak") {
			backups = append(backups, e.Name())
		}
	}
	require.Len(t, backups, 1)

	// The backup holds the pre-write contents.
	data, err := os.ReadFile(filepath.Join(dir, backups[0]))
	require.NoError(t, err)
	assert.Equal(t, cfgData, string(data))
}

func TestWriteBackupWithoutExistingFile(t *testing.T) {
	// Nothing to back up; the write must still succeed.
	path := filepath.Join(t.TempDir(), "canpi.cfg")
	require.NoError(t, New().Write(testSet(), path, true))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestRoundTrip(t *testing.T) {
	path := writeFile(t, cfgData)
	store := New()

	set := testSet()
	_, err := store.Reconcile(set, path)
	require.NoError(t, err)
	require.NoError(t, store.Write(set, path, false))

	reread := testSet()
	_, err = store.Reconcile(reread, path)
	require.NoError(t, err)

	for _, k := range set.Keys() {
		assert.Equal(t, set[k].Current, reread[k].Current, "key %s", k)
	}
}
