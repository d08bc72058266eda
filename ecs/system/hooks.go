package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/wallkick/ecs"
	"github.com/milk9111/wallkick/ecs/component"
	"github.com/milk9111/wallkick/prefabs"
)

// Hook scripts must define on_landed(engine, state), on_crouch(engine, state,
// entering), on_slide(engine, state, entering) and on_respawn(engine, state).
const hookDispatchScript = `
if __phase == "landed" {
	on_landed(__engine, __state)
} else if __phase == "crouch" {
	on_crouch(__engine, __state, __entering)
} else if __phase == "slide" {
	on_slide(__engine, __state, __entering)
} else if __phase == "respawn" {
	on_respawn(__engine, __state)
}
`

// ScriptLoader returns the source of a hook script.
type ScriptLoader func(path string) ([]byte, error)

// HookScriptSystem forwards locomotion events to per-entity tengo scripts.
// Scripts keep a private state map between calls.
type HookScriptSystem struct {
	load    ScriptLoader
	scripts map[ecs.Entity]*hookRuntime
	failed  map[string]bool
}

type hookRuntime struct {
	path      string
	compiled  *tengo.Compiled
	stateData *tengo.Map
}

func NewHookScriptSystem() *HookScriptSystem {
	return NewHookScriptSystemWithLoader(prefabs.LoadScript)
}

func NewHookScriptSystemWithLoader(load ScriptLoader) *HookScriptSystem {
	return &HookScriptSystem{
		load:    load,
		scripts: make(map[ecs.Entity]*hookRuntime),
		failed:  make(map[string]bool),
	}
}

// Invalidate drops compiled scripts so the next event recompiles them.
// An empty path drops everything.
func (h *HookScriptSystem) Invalidate(path string) {
	if h == nil {
		return
	}
	for e, rt := range h.scripts {
		if path == "" || sameScript(rt.path, path) {
			delete(h.scripts, e)
		}
	}
	for p := range h.failed {
		if path == "" || sameScript(p, path) {
			delete(h.failed, p)
		}
	}
}

func (h *HookScriptSystem) Update(w *ecs.World) {
	if h == nil || w == nil {
		return
	}

	for _, evt := range w.Events().Items() {
		hooks, ok := ecs.Get(w, evt.Entity, component.HooksComponent.Kind())
		if !ok || strings.TrimSpace(hooks.ScriptPath) == "" {
			continue
		}

		rt, err := h.runtime(evt.Entity, hooks.ScriptPath)
		if err != nil {
			if !h.failed[hooks.ScriptPath] {
				log.Printf("hooks: entity=%d load %s: %v", evt.Entity, hooks.ScriptPath, err)
				h.failed[hooks.ScriptPath] = true
			}
			continue
		}

		engine := buildHookEngine(w, evt.Entity)
		if err := rt.run(evt.Type, evt.Entering(), engine); err != nil {
			log.Printf("hooks: entity=%d %s: %v", evt.Entity, evt.Type, err)
		}
	}
}

func (h *HookScriptSystem) runtime(e ecs.Entity, path string) (*hookRuntime, error) {
	if rt, ok := h.scripts[e]; ok && rt.path == path {
		return rt, nil
	}
	if h.failed[path] {
		return nil, fmt.Errorf("previous compile failed")
	}
	if h.load == nil {
		return nil, fmt.Errorf("no script loader")
	}

	src, err := h.load(path)
	if err != nil {
		return nil, err
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + hookDispatchScript))
	_ = script.Add("__phase", "")
	_ = script.Add("__entering", false)
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}

	rt := &hookRuntime{
		path:      path,
		compiled:  compiled,
		stateData: &tengo.Map{Value: map[string]tengo.Object{}},
	}
	h.scripts[e] = rt
	return rt, nil
}

func (rt *hookRuntime) run(phase string, entering bool, engine *tengo.ImmutableMap) error {
	if err := rt.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := rt.compiled.Set("__entering", entering); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.stateData); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func buildHookEngine(w *ecs.World, e ecs.Entity) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["play_sound"] = &tengo.UserFunction{Name: "play_sound", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		audioComp, ok := ecs.Get(w, e, component.AudioComponent.Kind())
		if !ok || !audioComp.Request(objectAsString(args[0])) {
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["set_animation"] = &tengo.UserFunction{Name: "set_animation", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind())
		if !ok || !SetAnimation(anim, objectAsString(args[0])) {
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["state"] = &tengo.UserFunction{Name: "state", Value: func(args ...tengo.Object) (tengo.Object, error) {
		out := map[string]tengo.Object{}
		ch, ok := ecs.Get(w, e, component.CharacterComponent.Kind())
		if !ok || ch.Controller == nil {
			return &tengo.ImmutableMap{Value: out}, nil
		}
		s := ch.Controller.State()
		v := ch.Controller.Body().Velocity()
		p := ch.Controller.Body().Position()
		out["grounded"] = boolObject(s.Grounded)
		out["on_wall"] = boolObject(s.OnWall)
		out["crouching"] = boolObject(s.Crouching.Current)
		out["sliding"] = boolObject(s.Sliding.Current)
		out["facing_right"] = boolObject(s.FacingRight)
		out["can_double_jump"] = boolObject(s.CanDoubleJump)
		out["vx"] = &tengo.Float{Value: v.X}
		out["vy"] = &tengo.Float{Value: v.Y}
		out["x"] = &tengo.Float{Value: p.X}
		out["y"] = &tengo.Float{Value: p.Y}
		return &tengo.ImmutableMap{Value: out}, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		log.Printf("hooks: entity=%d %s", e, strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func sameScript(a, b string) bool {
	return strings.TrimPrefix(strings.TrimPrefix(a, "prefabs/"), "scripts/") ==
		strings.TrimPrefix(strings.TrimPrefix(b, "prefabs/"), "scripts/")
}
