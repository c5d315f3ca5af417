package iteratable

import "testing"

func TestSetAdd(t *testing.T) {
	S := NewSet(0)
	if !S.Empty() || len(S.Values()) != 0 {
		t.Errorf("expected new set to be empty")
	}
	S.Add(1)
	S.Add(2)
	if S.Add(1) {
		t.Errorf("expected duplicate element to be rejected")
	}
	if S.Size() != 2 || !S.Contains(2) || S.Contains(3) {
		t.Errorf("unexpected set contents %v", S.Values())
	}
	if S.Values()[0] != 1 {
		t.Errorf("expected first element to be 1, is %v", S.Values()[0])
	}
}

func TestSetIterateWhileAdding(t *testing.T) {
	S := NewSet(0)
	S.Add(1)
	var visited []int
	S.IterateOnce()
	for S.Next() {
		n := S.Item().(int)
		visited = append(visited, n)
		if n < 4 {
			S.Add(n + 1)
		}
	}
	if len(visited) != 4 || visited[3] != 4 {
		t.Errorf("expected iteration to visit added elements, visited %v", visited)
	}
	if S.Next() {
		t.Errorf("expected exhausted iteration to stay exhausted")
	}
}

func TestSetSubset(t *testing.T) {
	S := NewSet(0)
	for i := 1; i <= 6; i++ {
		S.Add(i)
	}
	even := S.Subset(func(el interface{}) bool {
		return el.(int)%2 == 0
	})
	if even.Size() != 3 || even.Values()[0] != 2 {
		t.Errorf("unexpected subset %v", even.Values())
	}
	if S.Size() != 6 {
		t.Errorf("expected subset to leave original unchanged")
	}
}
