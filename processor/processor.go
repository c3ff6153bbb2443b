package processor

import (
	"fmt"
	"log"
	"strings"

	"appScope/appmap"
	"appScope/classmap"
	"appScope/collector"
	"appScope/config"
	"appScope/converter"
	"appScope/render"
)

// New creates a Processor for one test's trace session. The introspector may
// be nil when no class-reflection information is available.
func New(cfg *config.Config, item collector.TestItem, intro classmap.Introspector) *Processor {
	return &Processor{
		config:   cfg,
		writer:   appmap.NewWriter(cfg, item),
		classmap: classmap.New(intro),
		eventID:  1,
		tokens:   make(map[uint64]int),
	}
}

// Process runs the full session pipeline: open the document, translate every
// notification from the channel, and complete the document when the channel
// closes. A fatal translation error aborts the session, leaving the document
// incomplete.
func (p *Processor) Process(notifs <-chan *collector.Notification) error {
	if err := p.Setup(); err != nil {
		return err
	}

	for notif := range notifs {
		if err := p.Handle(notif); err != nil {
			return err
		}
	}

	return p.Teardown()
}

// Setup opens the output document
func (p *Processor) Setup() error {
	return p.writer.Setup()
}

// Teardown completes the output document; idempotent
func (p *Processor) Teardown() error {
	return p.writer.Teardown(p.classmap)
}

// Handle translates one notification and streams any accepted entry.
// Notification kinds other than call and return are ignored.
func (p *Processor) Handle(notif *collector.Notification) error {
	if notif.Kind != collector.KindCall && notif.Kind != collector.KindReturn {
		return nil
	}

	switch notif.Kind {
	case collector.KindCall:
		entry, err := p.onCall(notif)
		if err != nil {
			return err
		}
		if entry == nil {
			return nil
		}
		return p.emit(entry)

	case collector.KindReturn:
		entry, err := p.onReturn(notif)
		if err != nil {
			return err
		}
		if entry == nil {
			return nil
		}
		return p.emit(entry)

	default:
		return fmt.Errorf("unhandled notification kind %q", notif.Kind)
	}
}

// emit writes one accepted entry and advances the shared id counter
func (p *Processor) emit(entry any) error {
	if err := p.writer.WriteEvent(entry); err != nil {
		return err
	}
	p.eventID++
	return nil
}

// onCall translates a call notification into a call entry, or suppresses it.
// Accepted calls register their class and source location in the classmap
// and leave a correlation token keyed by the activation's frame id.
func (p *Processor) onCall(notif *collector.Notification) (*appmap.CallEvent, error) {
	fqClass, cls, method, ok := splitQualname(notif)
	if !ok {
		// Bare function without an owning class; this tracer only
		// records instance and class methods.
		if Debug {
			log.Printf("Ignoring bare function %q in %s\n", notif.Qualname, notif.Module)
		}
		return nil, nil
	}

	table := p.classmap.EnsureClass(fqClass)

	entry := &appmap.CallEvent{
		ID:           p.eventID,
		Event:        "call",
		DefinedClass: cls,
		MethodID:     method,
		Path:         notif.Path,
		Lineno:       notif.DefLine,
		Static:       true,
		Parameters:   make([]*appmap.Parameter, 0, len(notif.Params)),
		ThreadID:     appmap.ThreadID,
	}

	// Sanity check: an entry missing identity fields signals a defect in
	// the notification source wiring, not recoverable input.
	if entry.DefinedClass == "" || entry.MethodID == "" || entry.Path == "" {
		return nil, fmt.Errorf("internal error, missing values in call entry: %+v", entry)
	}

	var ownerClass string
	for i, param := range notif.Params {
		captured := &appmap.Parameter{
			Name:  param.Name,
			Class: param.Value.Class,
			Kind:  "req", // parameter optionality is not modeled
		}

		if i == 0 && param.Name == receiverName {
			entry.Receiver = captured
			entry.Static = false
			ownerClass = param.Value.Class
			continue
		}

		captured.Value = render.Truncate(render.Display(param.Value.Data), p.config.ValueLimit)
		entry.Parameters = append(entry.Parameters, captured)
	}

	location := fmt.Sprintf("%s:%d", notif.Path, notif.DefLine)
	p.classmap.RegisterFunction(table, location, method, ownerClass)

	p.tokens[notif.FrameID] = entry.ID
	p.active = append(p.active, activation{
		id: entry.ID,
		frame: converter.StackFrame{
			Method:    fqClass + "." + method,
			File:      notif.Path,
			StartLine: notif.DefLine,
		},
		start: notif.Time,
	})

	return entry, nil
}

// onReturn translates a return notification into a return entry, or
// suppresses it. A return with no stored token for its frame is orphaned
// (its call was suppressed, or it is unwinding through untracked machinery)
// and is dropped; the classmap is never mutated on the return path.
func (p *Processor) onReturn(notif *collector.Notification) (*appmap.ReturnEvent, error) {
	_, cls, method, ok := splitQualname(notif)
	if !ok {
		return nil, nil
	}

	parentID, ok := p.tokens[notif.FrameID]
	if !ok {
		if Debug {
			log.Printf("Ignoring return with no matching call for frame %d (%s.%s)\n",
				notif.FrameID, cls, method)
		}
		return nil, nil
	}
	delete(p.tokens, notif.FrameID)

	entry := &appmap.ReturnEvent{
		ID:           p.eventID,
		Event:        "return",
		DefinedClass: cls,
		MethodID:     method,
		Path:         notif.Path,
		Lineno:       notif.DefLine,
		ParentID:     parentID,
	}

	if notif.Return != nil {
		entry.ReturnValue = &appmap.ReturnValue{
			Class: notif.Return.Class,
			Value: render.Display(notif.Return.Data),
		}
	}

	p.closeActivation(parentID, notif)

	return entry, nil
}

// closeActivation pops the activation matching the completed call and records
// it, with its enclosing stack snapshot, for profile conversion
func (p *Processor) closeActivation(callID int, notif *collector.Notification) {
	top := -1
	for i := len(p.active) - 1; i >= 0; i-- {
		if p.active[i].id == callID {
			top = i
			break
		}
	}
	if top < 0 {
		return
	}

	act := p.active[top]

	// Leaf first, then the enclosing traced calls
	frames := make([]converter.StackFrame, 0, top+1)
	for i := top; i >= 0; i-- {
		frames = append(frames, p.active[i].frame)
	}

	record := converter.CallRecord{
		Frames: frames,
		Start:  act.start,
		End:    notif.Time,
	}
	p.records = append(p.records, record)
	p.active = p.active[:top]
}

// Records returns the completed calls collected so far, for profile export
func (p *Processor) Records() []converter.CallRecord {
	return p.records
}

// Classmap exposes the aggregator backing this session
func (p *Processor) Classmap() *classmap.Classmap {
	return p.classmap
}

// OutputPath returns the document path, empty before setup
func (p *Processor) OutputPath() string {
	return p.writer.Path()
}

// splitQualname extracts the fully qualified class and method name from a
// notification. ok is false for bare functions and notifications without a
// function object, which are suppressed.
func splitQualname(notif *collector.Notification) (fqClass, cls, method string, ok bool) {
	qualname := notif.Qualname
	if qualname == "" {
		return "", "", "", false
	}

	idx := strings.LastIndex(qualname, ".")
	if idx < 0 {
		return "", "", "", false
	}
	cls = qualname[:idx]
	method = qualname[idx+1:]

	fqClass = cls
	if notif.Module != "" {
		fqClass = notif.Module + "." + cls
	}
	return fqClass, cls, method, true
}
