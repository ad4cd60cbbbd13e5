package scripting_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/deepdelve/internal/game/dice"
	"github.com/cory-johannsen/deepdelve/internal/game/message"
	"github.com/cory-johannsen/deepdelve/internal/scripting"
)

func newTestManager(t testing.TB) (*scripting.Manager, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)
	roller := dice.NewLoggedRoller(dice.NewSeededSource(7), logger)
	return scripting.NewManager(roller, logger, 0), logs
}

func writeTempLua(t testing.TB, filename, src string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(src), 0644))
	return dir
}

func hasLevel(logs *observer.ObservedLogs, lvl zapcore.Level) bool {
	for _, e := range logs.All() {
		if e.Level == lvl {
			return true
		}
	}
	return false
}

func TestManager_LoadDir_CallsHook(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "hooks.lua", `
		function test_hook(a, b)
			return a + b
		end
	`)
	require.NoError(t, mgr.LoadDir(dir))
	ret, err := mgr.CallHook("test_hook", lua.LNumber(3), lua.LNumber(4))
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(7), ret)
}

func TestManager_CallHook_MissingHook_NoOp(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadDir(writeTempLua(t, "empty.lua", `-- no functions`)))
	ret, err := mgr.CallHook("nonexistent_hook")
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
}

func TestManager_CallHook_NothingLoaded_LogsInfo(t *testing.T) {
	mgr, logs := newTestManager(t)
	ret, err := mgr.CallHook("some_hook")
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
	assert.True(t, hasLevel(logs, zap.InfoLevel), "expected Info log")
}

func TestManager_CallHook_RuntimeError_WarnLogNoPanic(t *testing.T) {
	mgr, logs := newTestManager(t)
	require.NoError(t, mgr.LoadDir(writeTempLua(t, "bad.lua", `
		function bad_hook()
			error("intentional error")
		end
	`)))
	ret, err := mgr.CallHook("bad_hook")
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
	assert.True(t, hasLevel(logs, zap.WarnLevel), "expected Warn log")
}

func TestManager_CallHook_RunawayLoop_Stopped(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)
	mgr := scripting.NewManager(dice.NewLoggedRoller(dice.NewSeededSource(1), logger), logger, 500)
	require.NoError(t, mgr.LoadDir(writeTempLua(t, "loop.lua", `
		function spin() while true do end end
		function ok() return 1 end
	`)))
	ret, err := mgr.CallHook("spin")
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
	assert.True(t, hasLevel(logs, zap.WarnLevel))

	ret, err = mgr.CallHook("ok")
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(1), ret, "VM stays usable after a limit hit")
}

func TestManager_LoadDir_EmptyDir_NoError(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadDir(t.TempDir()))
	ret, err := mgr.CallHook("anything")
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
}

func TestManager_LoadDir_InvalidLua_ReturnsError(t *testing.T) {
	mgr, _ := newTestManager(t)
	assert.Error(t, mgr.LoadDir(writeTempLua(t, "bad.lua", `this is not valid lua @@@@`)))
}

func TestManager_LoadDir_MissingDir_ReturnsError(t *testing.T) {
	mgr, _ := newTestManager(t)
	assert.Error(t, mgr.LoadDir(filepath.Join(t.TempDir(), "nope")))
}

func TestManager_LoadDir_FailureKeepsPreviousScripts(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadDir(writeTempLua(t, "good.lua", `function still_here() return 5 end`)))
	require.Error(t, mgr.LoadDir(writeTempLua(t, "bad.lua", `@@@`)))
	ret, err := mgr.CallHook("still_here")
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(5), ret)
}

func TestManager_LoadDir_MultipleFiles_OrderedByName(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.lua"), []byte(`base_val = 10`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.lua"), []byte(`
		function get_val() return base_val end
	`), 0644))
	require.NoError(t, mgr.LoadDir(dir))
	ret, err := mgr.CallHook("get_val")
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(10), ret)
}

func TestManager_OnHit(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadDir(writeTempLua(t, "hit.lua", `
		function double_up(attacker, target, damage)
			if attacker == "vampire" and target == "Tester" then
				return damage * 2
			end
			return 0
		end
		function heal_back(attacker, target, damage) return -5 end
		function chatter(attacker, target, damage) return "loud" end
	`)))
	assert.Equal(t, 14, mgr.OnHit("double_up", "vampire", "Tester", 7))
	assert.Equal(t, 0, mgr.OnHit("double_up", "kobold", "Tester", 7))
	assert.Equal(t, 0, mgr.OnHit("heal_back", "vampire", "Tester", 7), "negative bonus clamps to zero")
	assert.Equal(t, 0, mgr.OnHit("chatter", "vampire", "Tester", 7), "non-number counts as zero")
	assert.Equal(t, 0, mgr.OnHit("missing", "vampire", "Tester", 7))
}

func TestNewManager_PanicsOnNilRoller(t *testing.T) {
	assert.Panics(t, func() {
		scripting.NewManager(nil, zap.NewNop(), 0)
	})
}

func TestNewManager_PanicsOnNilLogger(t *testing.T) {
	roller := dice.NewLoggedRoller(dice.NewCryptoSource(), zap.NewNop())
	assert.Panics(t, func() {
		scripting.NewManager(roller, nil, 0)
	})
}

func TestManager_Close_ReleasesState(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadDir(writeTempLua(t, "init.lua", `function get_x() return 1 end`)))
	mgr.Close()
	ret, err := mgr.CallHook("get_x")
	assert.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
}

func TestManager_ConcurrentCalls_NoRace(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadDir(writeTempLua(t, "hooks.lua", `
		function concurrent_hook(a, b, d)
			return d + 1
		end
	`)))

	const goroutines = 10
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				assert.Equal(t, 3, mgr.OnHit("concurrent_hook", "a", "b", 2))
			}
		}()
	}
	wg.Wait()
}

func TestProperty_OnHitNeverNegative(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadDir(writeTempLua(t, "echo.lua", `
		function echo(attacker, target, damage) return damage end
	`)))
	rapid.Check(t, func(rt *rapid.T) {
		dam := rapid.IntRange(-1000, 1000).Draw(rt, "damage")
		got := mgr.OnHit("echo", "a", "b", dam)
		if got < 0 {
			rt.Fatalf("OnHit returned %d", got)
		}
		if dam > 0 && got != dam {
			rt.Fatalf("OnHit(%d) = %d", dam, got)
		}
	})
}

func TestManager_ContentScripts_DrinkBlood(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadDir("../../content/scripts"))
	buf := &message.Buffer{}
	mgr.Sink = buf

	assert.Zero(t, mgr.OnHit("drink_blood", "vampire", "Tester", 0), "no wound, no feeding")
	for i := 0; i < 200; i++ {
		bonus := mgr.OnHit("drink_blood", "vampire", "Tester", 5)
		assert.GreaterOrEqual(t, bonus, 0)
		assert.LessOrEqual(t, bonus, 6)
	}
	assert.True(t, buf.Contains("drinks deeply of Tester's blood"))
}
