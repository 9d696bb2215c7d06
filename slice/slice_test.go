package slice

import (
	"strconv"
	"testing"
)

func TestMap(t *testing.T) {
	got := Map([]int{1, 2, 3}, strconv.Itoa)
	if len(got) != 3 || got[0] != "1" || got[2] != "3" {
		t.Errorf("unexpected %v", got)
	}
}

func TestFilter(t *testing.T) {
	even := func(i int) bool { return i%2 == 0 }
	got := Filter([]int{1, 2, 3, 4}, even)
	if len(got) != 2 || got[0] != 2 || got[1] != 4 {
		t.Errorf("unexpected %v", got)
	}
	if got := Filter(nil, even); len(got) != 0 {
		t.Errorf("expected an empty result, got %v", got)
	}
	if n := Count([]int{1, 2, 3, 4, 6}, even); n != 3 {
		t.Errorf("expected 3, got %d", n)
	}
}
