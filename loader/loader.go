// Package loader loads Lua "pack" files into an immutable component catalog
// plus display metadata. The Lua VM is discarded after loading — zero Lua at
// runtime.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/phaseforge/engine/catalog"
	"github.com/nathoo/phaseforge/types"
)

// Pack is a compiled customization pack: a catalog variant plus display
// metadata for generated sets.
type Pack struct {
	Name    string
	Author  string
	Catalog *catalog.Catalog
	Names   []string // optional pool of display names for generated sets
}

// collector accumulates Lua definitions during file execution.
type collector struct {
	pack       *lua.LTable
	components []rawComponent
	names      []string
}

// rawComponent holds a component override table before compilation.
type rawComponent struct {
	kind  string
	table *lua.LTable
}

// Load reads all .lua files from dir, compiles them into a Pack, and
// validates the result against the engine's bounds.
func Load(dir string) (*Pack, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading pack directory %s: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", dir)
	}
	sort.Strings(luaFiles)

	// Sandboxed VM: safe libraries only.
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range luaFiles {
		if err := L.DoFile(filepath.Join(dir, f)); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	pack, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling pack: %w", err)
	}
	if err := validate(pack); err != nil {
		return nil, err
	}
	return pack, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Remove math.randomseed: pack files must not touch randomness.
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("randomseed", lua.LNil)
			tbl.RawSetString("random", lua.LNil)
		}
	}
}

// registerAPI registers the pack constructors as Lua globals.
func registerAPI(L *lua.LState, coll *collector) {
	// Pack { name = "...", author = "..." }
	L.SetGlobal("Pack", L.NewFunction(func(L *lua.LState) int {
		coll.pack = L.CheckTable(1)
		return 0
	}))

	// Component "kind" { ... } — curried: Component("kind") returns a
	// function that takes the override table.
	L.SetGlobal("Component", L.NewFunction(func(L *lua.LState) int {
		kind := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.components = append(coll.components, rawComponent{kind: kind, table: tbl})
			return 0
		}))
		return 1
	}))

	// Names { "...", "..." }
	L.SetGlobal("Names", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		for i := 1; i <= tbl.MaxN(); i++ {
			if s, ok := tbl.RawGetInt(i).(lua.LString); ok {
				coll.names = append(coll.names, string(s))
			}
		}
		return 0
	}))
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getNumber returns a numeric field from a Lua table, or def if missing.
func getNumber(tbl *lua.LTable, key string, def float64) float64 {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return float64(n)
	}
	return def
}

// getInt returns an int field from a Lua table, or def if missing.
func getInt(tbl *lua.LTable, key string, def int) int {
	return int(getNumber(tbl, key, float64(def)))
}

// compile turns collected Lua tables into a Pack. Component overrides are
// applied on top of the default catalog, so a pack only states what differs.
func compile(coll *collector) (*Pack, error) {
	pack := &Pack{Names: coll.names}
	if coll.pack != nil {
		pack.Name = getString(coll.pack, "name")
		pack.Author = getString(coll.pack, "author")
	}

	base := catalog.Default().Specs()
	specs := make([]catalog.Spec, len(base))
	copy(specs, base)

	index := make(map[types.ComponentKind]int, len(specs))
	for i, s := range specs {
		index[s.Kind] = i
	}

	for _, rc := range coll.components {
		i, ok := index[types.ComponentKind(rc.kind)]
		if !ok {
			return nil, fmt.Errorf("unknown component kind %q", rc.kind)
		}
		spec := specs[i]
		spec.MinSize = getInt(rc.table, "min_size", spec.MinSize)
		spec.MaxSize = getInt(rc.table, "max_size", spec.MaxSize)
		spec.BaseDifficulty = getNumber(rc.table, "base_difficulty", spec.BaseDifficulty)
		if noun := getString(rc.table, "noun"); noun != "" {
			spec.Noun = noun
		}
		specs[i] = spec
	}

	pack.Catalog = catalog.New(specs)
	return pack, nil
}

// validate checks the compiled pack for bounds the engine depends on.
func validate(pack *Pack) error {
	var errs []string
	for _, spec := range pack.Catalog.Specs() {
		if spec.MinSize < 1 || spec.MaxSize > 9 || spec.MinSize > spec.MaxSize {
			errs = append(errs, fmt.Sprintf(
				"component %q: size bounds [%d,%d] outside 1..9", spec.Kind, spec.MinSize, spec.MaxSize))
		}
		if spec.BaseDifficulty <= 0 {
			errs = append(errs, fmt.Sprintf(
				"component %q: base difficulty must be positive, got %v", spec.Kind, spec.BaseDifficulty))
		}
		if spec.Noun == "" {
			errs = append(errs, fmt.Sprintf("component %q: empty noun", spec.Kind))
		}
	}
	for _, name := range pack.Names {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, "Names: blank entry")
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("pack validation failed with %d error(s):\n  %s",
			len(errs), strings.Join(errs, "\n  "))
	}
	return nil
}

// PickName returns a display name for a generated set: the pack's pool keyed
// by the set id when available, otherwise a default derived from the id.
func (p *Pack) PickName(setID string) string {
	if p == nil || len(p.Names) == 0 {
		return "Phase Set " + setID
	}
	sum := 0
	for _, b := range []byte(setID) {
		sum += int(b)
	}
	return p.Names[sum%len(p.Names)]
}
