package evaluator

import "testing"

func TestListMapFilter(t *testing.T) {
	if got := mustDisplay(t, `map (\x x * 2) [1,2,3]`); got != "[2, 4, 6]" {
		t.Errorf("map got %q", got)
	}
	if got := mustDisplay(t, `filter (\x x > 1) [1,2,3]`); got != "[2, 3]" {
		t.Errorf("filter got %q", got)
	}
}

func TestListFoldAccumulatesLeftToRight(t *testing.T) {
	got := mustDisplay(t, `fold (\acc \x acc + x) 0 [1,2,3]`)
	if got != "6" {
		t.Errorf("got %q", got)
	}
}

func TestListHeadTailEmptyBehavior(t *testing.T) {
	if got := mustDisplay(t, `head [1,2,3]`); got != "1" {
		t.Errorf("head got %q", got)
	}
	if got := mustDisplay(t, `head []`); got != "none" {
		t.Errorf("head empty got %q", got)
	}
	if got := mustDisplay(t, `tail [1,2,3]`); got != "[2, 3]" {
		t.Errorf("tail got %q", got)
	}
	if got := mustDisplay(t, `tail []`); got != "[]" {
		t.Errorf("tail empty got %q", got)
	}
}

func TestListDropTakeClamp(t *testing.T) {
	if got := mustDisplay(t, `drop 2 [1,2,3,4]`); got != "[3, 4]" {
		t.Errorf("drop got %q", got)
	}
	if got := mustDisplay(t, `drop 100 [1,2,3]`); got != "[]" {
		t.Errorf("drop over-length got %q", got)
	}
	if got := mustDisplay(t, `take 2 [1,2,3,4]`); got != "[1, 2]" {
		t.Errorf("take got %q", got)
	}
	if got := mustDisplay(t, `take 100 [1,2]`); got != "[1, 2]" {
		t.Errorf("take over-length got %q", got)
	}
}

func TestListReverse(t *testing.T) {
	if got := mustDisplay(t, `reverse [1,2,3]`); got != "[3, 2, 1]" {
		t.Errorf("got %q", got)
	}
}

func TestListSortNumbersAndStrings(t *testing.T) {
	if got := mustDisplay(t, `sort [3,1,2]`); got != "[1, 2, 3]" {
		t.Errorf("got %q", got)
	}
	if got := mustDisplay(t, `sort ["b", "a", "c"]`); got != "[a, b, c]" {
		t.Errorf("got %q", got)
	}
}

func TestListSortByKeyFunction(t *testing.T) {
	got := mustDisplay(t, `sort_by (\x neg x) [1,3,2]`)
	if got != "[3, 2, 1]" {
		t.Errorf("got %q", got)
	}
}

func TestListSplitAt(t *testing.T) {
	got := mustDisplay(t, `split_at 2 [1,2,3,4]`)
	if got != "[[1, 2], [3, 4]]" {
		t.Errorf("got %q", got)
	}
}

func TestListEnumerate(t *testing.T) {
	got := mustDisplay(t, `enumerate ["a","b"]`)
	if got != "[[0, a], [1, b]]" {
		t.Errorf("got %q", got)
	}
}

func TestListFlattenFlattensOneLevelOnly(t *testing.T) {
	got := mustDisplay(t, `flatten [[1,2],[3],4]`)
	if got != "[1, 2, 3, 4]" {
		t.Errorf("got %q", got)
	}
}

func TestListFlatmap(t *testing.T) {
	got := mustDisplay(t, `flatmap (\x [x, x]) [1,2]`)
	if got != "[1, 1, 2, 2]" {
		t.Errorf("got %q", got)
	}
}

func TestListPartition(t *testing.T) {
	got := mustDisplay(t, `partition (\x x > 1) [1,2,3]`)
	if got != "[[2, 3], [1]]" {
		t.Errorf("got %q", got)
	}
}

func TestListRangeBuiltinAscendingAndDescending(t *testing.T) {
	if got := mustDisplay(t, `range 1 4`); got != "[1, 2, 3, 4]" {
		t.Errorf("got %q", got)
	}
	if got := mustDisplay(t, `range 4 1`); got != "[4, 3, 2, 1]" {
		t.Errorf("got %q", got)
	}
}

func TestListUnique(t *testing.T) {
	got := mustDisplay(t, `unique [1,2,2,3,1]`)
	if got != "[1, 2, 3]" {
		t.Errorf("got %q", got)
	}
}

func TestListZipUnzip(t *testing.T) {
	if got := mustDisplay(t, `zip [1,2,3] ["a","b"]`); got != "[[1, a], [2, b]]" {
		t.Errorf("zip got %q", got)
	}
	if got := mustDisplay(t, `unzip [[1,"a"],[2,"b"]]`); got != "[[1, 2], [a, b]]" {
		t.Errorf("unzip got %q", got)
	}
}

func TestListFilterRejectsNonBoolPredicate(t *testing.T) {
	_, err := runSrc(t, `filter (\x x) [1,2,3]`)
	if err == nil {
		t.Fatal("expected type-mismatch error")
	}
}
