package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	err := Init()
	if err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}
}

func TestLoggerOutput(t *testing.T) {
	Convey("Given a logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(InitWithWriter(&buf), ShouldBeNil)
		ctx := context.Background()

		Convey("When logging at info level", func() {
			Get().Info(ctx, "collection finished",
				String("player", "Alice"),
				Int("records", 3),
				Bool("modern", true),
				Duration("took", 2*time.Millisecond),
			)

			Convey("Then message and fields are written", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "collection finished")
				So(out, ShouldContainSubstring, "player=Alice")
				So(out, ShouldContainSubstring, "records=3")
				So(out, ShouldContainSubstring, "modern=true")
				So(out, ShouldContainSubstring, "source=")
			})
		})

		Convey("When logging below the configured level", func() {
			So(SetLevelString("warn"), ShouldBeNil)
			Get().Debug(ctx, "hidden")
			Get().Info(ctx, "hidden too")
			Get().Warn(ctx, "visible", Error(errors.New("boom")))

			Convey("Then only the warning is written", func() {
				out := buf.String()
				So(out, ShouldNotContainSubstring, "hidden")
				So(out, ShouldContainSubstring, "visible")
				So(out, ShouldContainSubstring, "error=boom")
			})
			_ = SetLevelString("info")
		})

		Convey("When using a named logger", func() {
			Named("rcon").Info(ctx, "connected")

			Convey("Then the component is attached", func() {
				So(buf.String(), ShouldContainSubstring, "component=rcon")
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level strings", t, func() {
		So(SetLevelString("DEBUG"), ShouldBeNil)
		So(SetLevelString("warning"), ShouldBeNil)
		So(SetLevelString(""), ShouldBeNil)
		So(SetLevelString("verbose"), ShouldNotBeNil)
		_ = SetLevelString("info")
	})
}

func TestInitWithNilWriter(t *testing.T) {
	Convey("Given a nil writer", t, func() {
		So(InitWithWriter(nil), ShouldNotBeNil)
	})
}

func TestNop(t *testing.T) {
	Convey("Given the no-op logger", t, func() {
		l := Nop()
		So(func() {
			l.Error(context.Background(), "dropped")
			l.Named("x").Warn(context.Background(), "dropped")
		}, ShouldNotPanic)
	})
}
