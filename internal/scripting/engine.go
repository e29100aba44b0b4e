package scripting

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

//go:embed scripts
var builtin embed.FS

// scriptGroups is the load order: core formulas first, then features.
var scriptGroups = []string{"core", "item"}

// Engine wraps a single gopher-lua VM for game formulas.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine with the built-in scripts loaded. When
// scriptsDir is non-empty, its core/ and item/ scripts are loaded after the
// built-ins and may redefine any function.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	for _, group := range scriptGroups {
		if err := e.loadEmbedded(group); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load builtin %s scripts: %w", group, err)
		}
	}
	if scriptsDir != "" {
		for _, group := range scriptGroups {
			if err := e.loadDir(filepath.Join(scriptsDir, group)); err != nil {
				vm.Close()
				return nil, fmt.Errorf("load %s scripts: %w", group, err)
			}
		}
	}
	return e, nil
}

func (e *Engine) loadEmbedded(group string) error {
	dir := path.Join("scripts", group)
	entries, err := fs.ReadDir(builtin, dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".lua" {
			continue
		}
		p := path.Join(dir, entry.Name())
		src, err := builtin.ReadFile(p)
		if err != nil {
			return err
		}
		if err := e.vm.DoString(string(src)); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
		e.log.Debug("loaded builtin lua script", zap.String("file", p))
	}
	return nil
}

// loadDir loads all .lua files in a directory in name order. A missing
// directory is not an error.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		p := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", p))
	}
	return nil
}

// DoString runs a chunk of Lua in the engine's VM. Used to patch formulas at
// runtime and in tests.
func (e *Engine) DoString(src string) error {
	return e.vm.DoString(src)
}

// --- Level Up Bridge ---

// LevelUpRolls calls Lua levelup_stat_rolls() and returns the weighted pool
// a level-up draws each stat gain from. Returns nil when the function is
// missing or yields anything but a non-empty list of non-negative integers.
func (e *Engine) LevelUpRolls() []int {
	fn := e.vm.GetGlobal("levelup_stat_rolls")
	if fn == lua.LNil {
		e.log.Error("lua function levelup_stat_rolls not found")
		return nil
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}); err != nil {
		e.log.Error("lua levelup_stat_rolls error", zap.Error(err))
		return nil
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua levelup_stat_rolls returned non-table")
		return nil
	}
	n := rt.Len()
	if n == 0 {
		return nil
	}
	rolls := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		v, ok := rt.RawGetInt(i).(lua.LNumber)
		if !ok || v < 0 {
			e.log.Error("lua levelup_stat_rolls returned invalid entry", zap.Int("index", i))
			return nil
		}
		rolls = append(rolls, int(v))
	}
	return rolls
}

// --- Item Effect Bridge ---

// EffectContext describes the target of a consumable.
type EffectContext struct {
	Arg   int
	HP    int
	MaxHP int
	ATK   int
	DEF   int
	SPD   int
}

// EffectResult holds the stat deltas an effect asks for.
type EffectResult struct {
	HP    int
	MaxHP int
	ATK   int
	DEF   int
	SPD   int
}

// ItemEffect calls Lua get_item_effect(name, ctx). ok is false when the
// effect is unknown or the script failed.
func (e *Engine) ItemEffect(name string, ctx EffectContext) (EffectResult, bool) {
	fn := e.vm.GetGlobal("get_item_effect")
	if fn == lua.LNil {
		e.log.Error("lua function get_item_effect not found")
		return EffectResult{}, false
	}

	t := e.vm.NewTable()
	t.RawSetString("arg", lua.LNumber(ctx.Arg))
	t.RawSetString("hp", lua.LNumber(ctx.HP))
	t.RawSetString("max_hp", lua.LNumber(ctx.MaxHP))
	t.RawSetString("atk", lua.LNumber(ctx.ATK))
	t.RawSetString("def", lua.LNumber(ctx.DEF))
	t.RawSetString("spd", lua.LNumber(ctx.SPD))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(name), t); err != nil {
		e.log.Error("lua get_item_effect error", zap.String("effect", name), zap.Error(err))
		return EffectResult{}, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		return EffectResult{}, false
	}
	return EffectResult{
		HP:    lInt(rt, "hp"),
		MaxHP: lInt(rt, "max_hp"),
		ATK:   lInt(rt, "atk"),
		DEF:   lInt(rt, "def"),
		SPD:   lInt(rt, "spd"),
	}, true
}

// --- Lua helpers ---

// lInt reads an integer field from a Lua table; missing fields read as 0.
func lInt(t *lua.LTable, key string) int {
	return int(lua.LVAsNumber(t.RawGetString(key)))
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
