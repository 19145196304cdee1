package syncmap

import (
	"sync"
	"testing"
)

func Test_SyncMap_GetSet(t *testing.T) {
	sm := New[string, float64]()

	if sm.Has("low") {
		t.Fatal("Has() returned true on empty map")
	}

	sm.Set("low", 12.5)
	if sm.Get("low") != 12.5 {
		t.Fatalf("Get(...) didn't return the right value")
	}

	sm.Set("low", 40)
	if sm.Get("low") != 40 {
		t.Fatalf("Get(...) didn't return the changed value")
	}

	if sm.Get("high") != 0 {
		t.Fatalf("Get(...) on a missing key should return the zero value")
	}
}

func Test_SyncMap_DeleteKeys(t *testing.T) {
	sm := New[chan int, bool]()
	a, b := make(chan int), make(chan int)
	sm.Set(a, true)
	sm.Set(b, true)

	if sm.Len() != 2 || len(sm.Keys()) != 2 {
		t.Fatalf("Len() = %d, want 2", sm.Len())
	}

	sm.Delete(a)
	if sm.Has(a) {
		t.Fatal("Has() returned true after Delete")
	}
	keys := sm.Keys()
	if len(keys) != 1 || keys[0] != b {
		t.Fatalf("Keys() = %v, want only the remaining channel", keys)
	}
}

func Test_SyncMap_Concurrent(t *testing.T) {
	sm := New[int, int]()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sm.Set(i, i*i)
			_ = sm.Keys()
			if sm.Get(i) != i*i {
				t.Errorf("Get(%d) = %d", i, sm.Get(i))
			}
		}(i)
	}
	wg.Wait()
	if sm.Len() != 20 {
		t.Fatalf("Len() = %d, want 20", sm.Len())
	}
}
