package deploy

// NameStatus classifies a selected service name against the canonical list.
type NameStatus int

const (
	// Known marks a service name present in the canonical list.
	Known NameStatus = iota
	// UnknownWarned marks a name absent from the canonical list.
	// The restart is still attempted; the name is surfaced as a warning.
	UnknownWarned
)

// Service is one entry of the resolved deployment selection.
type Service struct {
	// Name is the systemd unit name to restart and verify.
	Name string
	// Status records whether the name belongs to the canonical list.
	Status NameStatus
}

// Select resolves the target services from command arguments.
//
// With arguments, the selection is exactly those names in the given order,
// duplicates permitted, each classified against the canonical list. Without
// arguments, the selection is the full canonical list in canonical order.
func Select(args, canonical []string) []Service {
	if len(args) == 0 {
		selection := make([]Service, 0, len(canonical))
		for _, name := range canonical {
			selection = append(selection, Service{Name: name, Status: Known})
		}

		return selection
	}

	known := make(map[string]struct{}, len(canonical))
	for _, name := range canonical {
		known[name] = struct{}{}
	}

	selection := make([]Service, 0, len(args))

	for _, name := range args {
		status := Known
		if _, ok := known[name]; !ok {
			status = UnknownWarned
		}

		selection = append(selection, Service{Name: name, Status: status})
	}

	return selection
}

// Names returns the plain name list of a selection, preserving order.
func Names(selection []Service) []string {
	names := make([]string, 0, len(selection))
	for _, svc := range selection {
		names = append(names, svc.Name)
	}

	return names
}
