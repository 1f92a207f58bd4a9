package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/goleak"
)

func TestProgramDispatcher(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	Convey("Given a dispatcher bound to a program", t, func() {
		msgs := make(chan tea.Msg, 16)
		d := &programDispatcher{}

		var order []int
		d.Dispatch(func() { order = append(order, 1) })
		So(len(msgs), ShouldEqual, 0)

		d.bind(func(msg tea.Msg) { msgs <- msg })

		Convey("Tasks queued before binding wake the loop once", func() {
			So(<-msgs, ShouldResemble, drainMsg{})
			So(d.drain(), ShouldEqual, 1)
			So(order, ShouldResemble, []int{1})
		})

		Convey("Tasks run in order, including nested dispatches", func() {
			d.Dispatch(func() {
				order = append(order, 2)
				d.Dispatch(func() { order = append(order, 4) })
			})
			d.Dispatch(func() { order = append(order, 3) })

			So(<-msgs, ShouldResemble, drainMsg{})
			So(d.drain(), ShouldEqual, 4)
			So(order, ShouldResemble, []int{1, 2, 3, 4})

			select {
			case <-msgs:
				So("unexpected wake-up", ShouldBeEmpty)
			case <-time.After(20 * time.Millisecond):
			}
		})

		Convey("A drained queue wakes again on the next dispatch", func() {
			<-msgs
			d.drain()

			d.Dispatch(func() { order = append(order, 5) })
			So(<-msgs, ShouldResemble, drainMsg{})
			So(d.drain(), ShouldEqual, 1)
			So(order, ShouldResemble, []int{1, 5})
		})
	})
}
