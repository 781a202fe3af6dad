package tasks

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/gophtodo/internal/client/models"
	"github.com/dmitrijs2005/gophtodo/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func ids(list []models.Task) []string {
	out := make([]string, 0, len(list))
	for _, t := range list {
		out = append(out, t.ID)
	}
	return out
}

func sample() []models.Task {
	done := t0.Add(time.Hour)
	return []models.Task{
		{ID: "c", Text: "third", CreatedAt: t0.Add(2 * time.Minute)},
		{ID: "b", Text: "second", Completed: true, CreatedAt: t0.Add(time.Minute), CompletedAt: &done},
		{ID: "a", Text: "first", CreatedAt: t0},
	}
}

func TestAdd_BlankIsNoop(t *testing.T) {
	for _, text := range []string{"", "   ", "\t\n"} {
		list := sample()
		out, changed := Add(list, "x", text, t0)
		assert.False(t, changed)
		assert.Equal(t, list, out)
	}
}

func TestAdd_PrependsTrimmedActiveTask(t *testing.T) {
	list := sample()
	out, changed := Add(list, "d", "  fourth  ", t0.Add(time.Hour))
	require.True(t, changed)

	assert.Equal(t, []string{"d", "c", "b", "a"}, ids(out))
	assert.Equal(t, "fourth", out[0].Text)
	assert.False(t, out[0].Completed)
	assert.Nil(t, out[0].CompletedAt)
	assert.Equal(t, t0.Add(time.Hour), out[0].CreatedAt)
	assert.Len(t, list, 3, "input must not change")
}

func TestAdd_NewestFirst(t *testing.T) {
	var list []models.Task
	list, _ = Add(list, "1", "A", t0)
	list, _ = Add(list, "2", "B", t0.Add(time.Second))
	assert.Equal(t, []string{"B", "A"}, []string{list[0].Text, list[1].Text})
}

func TestToggle_SetsAndClearsCompletedAt(t *testing.T) {
	list := sample()
	at := t0.Add(3 * time.Hour)

	out, changed := Toggle(list, "a", at)
	require.True(t, changed)
	assert.True(t, out[2].Completed)
	require.NotNil(t, out[2].CompletedAt)
	assert.Equal(t, at, *out[2].CompletedAt)
	assert.Equal(t, t0, out[2].CreatedAt)
	assert.False(t, list[2].Completed, "input must not change")

	out, changed = Toggle(out, "a", at.Add(time.Hour))
	require.True(t, changed)
	assert.False(t, out[2].Completed)
	assert.Nil(t, out[2].CompletedAt)
}

func TestToggle_UnknownIDIsNoop(t *testing.T) {
	list := sample()
	out, changed := Toggle(list, "zzz", t0)
	assert.False(t, changed)
	assert.Equal(t, list, out)
}

func TestDelete(t *testing.T) {
	list := sample()

	out, changed := Delete(list, "b")
	require.True(t, changed)
	assert.Equal(t, []string{"c", "a"}, ids(out))

	out, changed = Delete(out, "b")
	assert.False(t, changed)
	assert.Equal(t, []string{"c", "a"}, ids(out))
}

func TestEdit(t *testing.T) {
	list := sample()

	out, changed := Edit(list, "a", "  renamed ")
	require.True(t, changed)
	assert.Equal(t, "renamed", out[2].Text)
	assert.Equal(t, list[2].CreatedAt, out[2].CreatedAt)
	assert.Equal(t, "first", list[2].Text)

	_, changed = Edit(out, "a", "   ")
	assert.False(t, changed)
	_, changed = Edit(out, "a", "renamed")
	assert.False(t, changed)
	_, changed = Edit(out, "missing", "x")
	assert.False(t, changed)
}

func TestClearCompleted_RemovesExactlyCompletedInOrder(t *testing.T) {
	done := t0
	list := []models.Task{
		{ID: "1", Text: "x"},
		{ID: "2", Text: "x", Completed: true, CompletedAt: &done},
		{ID: "3", Text: "x"},
		{ID: "4", Text: "x", Completed: true, CompletedAt: &done},
		{ID: "5", Text: "x"},
	}

	out, changed := ClearCompleted(list)
	require.True(t, changed)
	assert.Equal(t, []string{"1", "3", "5"}, ids(out))

	_, changed = ClearCompleted(out)
	assert.False(t, changed)
}

func TestVisible_PartitionsList(t *testing.T) {
	list := sample()

	all := Visible(list, models.FilterAll)
	active := Visible(list, models.FilterActive)
	completed := Visible(list, models.FilterCompleted)

	assert.Equal(t, []string{"c", "b", "a"}, ids(all))
	assert.Equal(t, []string{"c", "a"}, ids(active))
	assert.Equal(t, []string{"b"}, ids(completed))
	assert.ElementsMatch(t, ids(all), append(ids(active), ids(completed)...))
	for _, a := range active {
		assert.NotContains(t, ids(completed), a.ID)
	}
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "0 tasks left", Summary(nil))
	assert.Equal(t, "2 tasks left", Summary(sample()))

	one, _ := Toggle(sample(), "a", t0)
	assert.Equal(t, 1, ActiveCount(one))
	assert.Equal(t, "1 task left", Summary(one))
}

func TestResolve(t *testing.T) {
	list := []models.Task{
		{ID: "abc123"}, {ID: "abd456"}, {ID: "ab"}, {ID: "fff"},
	}

	got, err := Resolve(list, "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc123", got)

	got, err = Resolve(list, "ab")
	require.NoError(t, err)
	assert.Equal(t, "ab", got, "exact match wins over prefixes")

	_, err = Resolve(list, "a")
	assert.ErrorIs(t, err, common.ErrAmbiguousID)

	_, err = Resolve(list, "zzz")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = Resolve(list, " ")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
