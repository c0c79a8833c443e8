package migrate

// Action is what happened to one mapping entry.
type Action string

const (
	ActionUpdated Action = "updated"
	ActionDryRun  Action = "dry-run"
	ActionCreated Action = "created"
	ActionSkipped Action = "skipped"
)

type PageOutcome struct {
	Mapping PageMapping
	Action  Action
	// Published location of the page that was (or would be) written.
	URL string
	// Human-readable status line.
	Message string
}

// MigrationReport holds one outcome per mapping entry, in mapping order.
type MigrationReport struct {
	Outcomes []PageOutcome
}

// Updated returns only the outcomes that wrote to ReadMe.  Dry runs executed, but don't count.
func (r *MigrationReport) Updated() []PageOutcome {
	updated := []PageOutcome{}
	for _, o := range r.Outcomes {
		if o.Action == ActionUpdated {
			updated = append(updated, o)
		}
	}
	return updated
}

func (r *MigrationReport) Processed() int {
	return len(r.Outcomes)
}

// CreationReport holds one outcome per mapping entry, in mapping order.
type CreationReport struct {
	Outcomes []PageOutcome
}

// Lines returns the status line of each mapping entry.
func (r *CreationReport) Lines() []string {
	lines := make([]string, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		lines = append(lines, o.Message)
	}
	return lines
}

func (r *CreationReport) Created() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Action == ActionCreated {
			n++
		}
	}
	return n
}
