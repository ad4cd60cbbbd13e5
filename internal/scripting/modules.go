package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/deepdelve/internal/game/dice"
)

// RegisterModules registers the engine global into L:
//
//	engine.log.debug|info|warn|error(msg)
//	engine.dice.roll(expr)   -> {total, faces}
//	engine.dice.randint(n)   -> 1..n
//	engine.message(text)
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetField(engine, "log", m.logModule(L))
	L.SetField(engine, "dice", m.diceModule(L))
	L.SetField(engine, "message", L.NewFunction(func(L *lua.LState) int {
		if m.Sink != nil {
			m.Sink.Msg(L.CheckString(1))
		}
		return 0
	}))
	L.SetGlobal("engine", engine)
}

func (m *Manager) logModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	levels := map[string]func(string, ...zap.Field){
		"debug": m.logger.Debug,
		"info":  m.logger.Info,
		"warn":  m.logger.Warn,
		"error": m.logger.Error,
	}
	for name, logFn := range levels {
		logFn := logFn
		L.SetField(mod, name, L.NewFunction(func(L *lua.LState) int {
			logFn(L.CheckString(1), zap.String("source", "lua"))
			return 0
		}))
	}
	return mod
}

func (m *Manager) diceModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	L.SetField(mod, "roll", L.NewFunction(func(L *lua.LState) int {
		d, err := dice.Parse(L.CheckString(1))
		if err != nil {
			L.RaiseError("engine.dice.roll: %s", err.Error())
			return 0
		}
		res := m.roller.Roll(d)
		faces := L.NewTable()
		for _, f := range res.Faces {
			faces.Append(lua.LNumber(f))
		}
		out := L.NewTable()
		L.SetField(out, "total", lua.LNumber(res.Total()))
		L.SetField(out, "faces", faces)
		L.Push(out)
		return 1
	}))
	L.SetField(mod, "randint", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(dice.RandInt1(m.roller, L.CheckInt(1))))
		return 1
	}))
	return mod
}
