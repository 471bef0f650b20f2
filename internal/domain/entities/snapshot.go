package entities

// Snapshot is the raw export document of the whole log
type Snapshot struct {
	Records             []Record `json:"records"`
	Participants        Roster   `json:"participants"`
	SelectedParticipant *string  `json:"selectedParticipant"`
	ExportDate          string   `json:"exportDate"`
}

// Selected returns the selected participant or an empty string
func (s Snapshot) Selected() string {
	if s.SelectedParticipant == nil {
		return ""
	}
	return *s.SelectedParticipant
}
