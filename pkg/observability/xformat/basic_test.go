package xformat

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBasicMinimal(t *testing.T) {
	f := NewBasic(testOpts(false, false, false), WithClock(fixedClock), testIdentity())

	got := render(f, msgRecord(LevelInformation, "started", nil), nil)

	assert.Equal(t, "[2024-03-05T14:07:09Z] [info] started \n", got)
}

func TestBasicAllFields(t *testing.T) {
	f := NewBasic(testOpts(true, true, true), WithClock(fixedClock), testIdentity())
	scopes := ScopeList{"req-1", "step=2"}

	got := render(f, msgRecord(LevelWarning, "hello", errors.New("boom")), scopes)

	assert.Equal(t, `[00042] [2024-03-05T14:07:09Z] [warn] [host\alice] App.Worker[7] => req-1 => step=2: hello boom `+"\n", got)
}

func TestBasicLocalTimestampHasNoZ(t *testing.T) {
	opts := testOpts(false, false, false)
	opts.UseUTCTimestamp = false
	f := NewBasic(opts, WithClock(fixedClock), testIdentity())

	got := render(f, msgRecord(LevelDebug, "x", nil), nil)

	local := fixedTime.Local().Format(sortableLayout)
	assert.Equal(t, "["+local+"] [dbug] x \n", got)
}

func TestBasicEmptyMessage(t *testing.T) {
	f := NewBasic(testOpts(true, true, true), WithClock(fixedClock), testIdentity())

	assert.Empty(t, render(f, msgRecord(LevelError, "", nil), nil), "空消息且无错误不输出")
	assert.Empty(t, render(f, &Record{Level: LevelError}, nil), "Render 与 State 都为 nil")

	// 只有错误时仍输出，消息段省略
	got := render(f, msgRecord(LevelError, "", errors.New("disk full")), nil)
	assert.Equal(t, `[00042] [2024-03-05T14:07:09Z] [fail] [host\alice] App.Worker[7]: disk full `+"\n", got)
}

func TestBasicBlankMessageSkipsSegment(t *testing.T) {
	f := NewBasic(testOpts(false, false, false), WithClock(fixedClock), testIdentity())

	got := render(f, msgRecord(LevelInformation, "   ", nil), nil)

	assert.Equal(t, "[2024-03-05T14:07:09Z] [info] \n", got)
}

func TestBasicCollapsesNewlines(t *testing.T) {
	f := NewBasic(testOpts(false, false, true), WithClock(fixedClock), testIdentity())
	scopes := ScopeList{"multi\nline"}

	got := render(f, msgRecord(LevelCritical, "line1\r\nline2\nline3", errors.New("e1\ne2")), scopes)

	assert.Equal(t, "[2024-03-05T14:07:09Z] [crit] App.Worker[7] => multi line: line1 line2 line3 e1 e2 \n", got)
	assert.Equal(t, 1, countLines(got))
}

func TestBasicCustomRender(t *testing.T) {
	f := NewBasic(testOpts(false, false, false), WithClock(fixedClock), testIdentity())
	rec := &Record{
		Level: LevelInformation,
		State: 3,
		Render: func(state any, err error) string {
			return "count=" + string(rune('0'+state.(int)))
		},
	}

	assert.Equal(t, "[2024-03-05T14:07:09Z] [info] count=3 \n", render(f, rec, nil))
}

func TestBasicSetOptions(t *testing.T) {
	f := NewBasic(testOpts(false, false, false), WithClock(fixedClock), testIdentity())
	before := f.Options()

	f.SetOptions(testOpts(true, false, false))

	assert.False(t, before.IncludePID, "旧快照不被修改")
	assert.Equal(t, "[00042] [2024-03-05T14:07:09Z] [info] a \n", render(f, msgRecord(LevelInformation, "a", nil), nil))

	f.SetOptions(nil)
	assert.Equal(t, DefaultOptions(), f.Options())
}

func countLines(s string) int {
	n := 0
	for _, c := range s {
		if c == '\n' {
			n++
		}
	}
	return n
}
