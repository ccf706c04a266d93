// stack_test.go - Simple test-cases for our stack

package stack

import "testing"

// TestEmpty: Test that the Empty() function works as expected.
func TestEmpty(t *testing.T) {
	s := New()

	if !s.Empty() {
		t.Errorf("New stack is not empty!")
	}

	s.Push(33)

	if s.Empty() {
		t.Errorf("Despite storing a value the stack is still empty!")
	}
}

// TestEmptyPop: Test that pop'ing from an empty stack fails.
func TestEmptyPop(t *testing.T) {
	s := New()

	_, err := s.Pop()
	if err == nil {
		t.Errorf("Expected an error popping from an empty stack!")
	}
}

// TestPushPop: Test that we can store/retrieve as we expect.
func TestPushPop(t *testing.T) {
	s := New()

	s.Push(33)

	out, err := s.Pop()
	if err != nil {
		t.Errorf("We shouldn't get an error popping from our stack")
	}
	if out != 33 {
		t.Errorf("We retrieved a value from our stack, but it was wrong")
	}
}

// TestTopLeavesValueInPlace: Test that Top() doesn't remove the value.
func TestTopLeavesValueInPlace(t *testing.T) {
	s := New()
	s.Push(7)

	v, err := s.Top()
	if err != nil {
		t.Errorf("unexpected error from Top()")
	}
	if v != 7 {
		t.Errorf("Top() returned the wrong value")
	}
	if s.Empty() {
		t.Errorf("Top() should not have removed the value")
	}
}

// TestSetOverwritesTop: Test that Set() replaces the top value in place.
func TestSetOverwritesTop(t *testing.T) {
	s := New()
	s.Push(1)
	s.Push(2)

	if err := s.Set(99); err != nil {
		t.Errorf("unexpected error from Set()")
	}
	if s.Len() != 2 {
		t.Errorf("Set() should not change the stack depth")
	}

	out, _ := s.Pop()
	if out != 99 {
		t.Errorf("Set() did not overwrite the top value")
	}
}

// TestSetOnEmptyStackFails: Test that Set() on an empty stack is an error.
func TestSetOnEmptyStackFails(t *testing.T) {
	s := New()
	if err := s.Set(1); err == nil {
		t.Errorf("expected an error setting the top of an empty stack")
	}
}
