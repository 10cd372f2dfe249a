// ==============================================================================================
// FILE: value/environment_unit_test.go
// ==============================================================================================
// PURPOSE: Specific unit tests for the Environment struct.
//          Validates frame-then-global lookup, frame isolation, and deep-copy semantics.
// ==============================================================================================

package value

import "testing"

func TestEnvironment_GetSet(t *testing.T) {
	env := NewEnvironment()

	// 1. Test retrieval of non-existent variable.
	if _, ok := env.Get("x"); ok {
		t.Errorf("expected 'x' to not exist")
	}

	// 2. Test Set and Get round-trips the value.
	env.Set("x", &Int{Value: 10})

	result, ok := env.Get("x")
	if !ok {
		t.Fatalf("expected 'x' to exist")
	}
	if result.(*Int).Value != 10 {
		t.Errorf("got %v, want 10", result)
	}
}

func TestEnvironment_GetReturnsCopyNotAlias(t *testing.T) {
	env := NewEnvironment()
	env.Set("a", &Array{Elements: []Value{&Int{Value: 1}, &Int{Value: 2}}})

	got, _ := env.Get("a")
	arr := got.(*Array)
	arr.Elements[0] = &Int{Value: 999} // mutate the copy

	again, _ := env.Get("a")
	if again.(*Array).Elements[0].(*Int).Value != 1 {
		t.Errorf("mutating a Get() result leaked into environment storage")
	}
}

func TestEnvironment_FrameShadowsGlobalWithoutMutatingIt(t *testing.T) {
	env := NewEnvironment()
	env.Set("x", &Int{Value: 10})

	env.PushFrame()
	env.Set("x", &Int{Value: 99}) // writes to the frame, not global

	inFrame, _ := env.Get("x")
	if inFrame.(*Int).Value != 99 {
		t.Errorf("frame write did not shadow global")
	}

	env.PopFrame()
	afterPop, _ := env.Get("x")
	if afterPop.(*Int).Value != 10 {
		t.Errorf("global 'x' was mutated by a frame-local write; got %v", afterPop)
	}
}

func TestEnvironment_FrameFallsThroughToGlobalForUndeclaredNames(t *testing.T) {
	env := NewEnvironment()
	env.Set("y", &Int{Value: 5})

	env.PushFrame()
	// A fresh frame still falls through to global for names it has not set itself.
	val, ok := env.Get("y")
	if !ok || val.(*Int).Value != 5 {
		t.Errorf("frame failed to fall through to global for 'y'")
	}
}
