// Package scene holds the state a stage shares with its presenters: the
// dialogue queue, the follow camera and the per-tick snapshot.
package scene

// Speaker names the voice of a dialogue line.
type Speaker string

const (
	System   Speaker = "System"
	Lumin    Speaker = "Lumin"
	Guardian Speaker = "Guardian"
)

// Line is one dialogue box.
type Line struct {
	Speaker Speaker
	Title   string
	Text    string
}

type queued struct {
	line Line
	done func()
}

// Dialogues is a FIFO of lines shown one at a time. While a line is active
// the stage pauses the simulation.
type Dialogues struct {
	queue []queued
}

// Push appends lines to the queue.
func (d *Dialogues) Push(lines ...Line) {
	for _, l := range lines {
		d.queue = append(d.queue, queued{line: l})
	}
}

// PushThen appends lines and calls done once the last of them is dismissed.
func (d *Dialogues) PushThen(done func(), lines ...Line) {
	if len(lines) == 0 {
		if done != nil {
			done()
		}
		return
	}
	d.Push(lines...)
	d.queue[len(d.queue)-1].done = done
}

// Active returns the line currently shown.
func (d *Dialogues) Active() (Line, bool) {
	if len(d.queue) == 0 {
		return Line{}, false
	}
	return d.queue[0].line, true
}

// Dismiss closes the active line. Returns false when nothing was shown.
func (d *Dialogues) Dismiss() bool {
	if len(d.queue) == 0 {
		return false
	}
	head := d.queue[0]
	d.queue = d.queue[1:]
	if head.done != nil {
		head.done()
	}
	return true
}

// Len returns the number of pending lines, the active one included.
func (d *Dialogues) Len() int { return len(d.queue) }

// Clear drops every pending line without running callbacks.
func (d *Dialogues) Clear() { d.queue = nil }
