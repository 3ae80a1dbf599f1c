package model

// DownloadState is the persisted record for one title.
//
// It carries a copy of the title's SoftwareConfig, refreshed on every run, plus the
// fields that track what is currently stored locally. The JSON layout is flat,
// matching downloads.json:
//
//	{
//	  "FLEx": {
//	    "title": "FLEx",
//	    "downloadPage": "https://software.sil.org/fieldworks/download/",
//	    "localPath": "public/downloads/FieldWorks_9.1.22_Online_x64.exe",
//	    "version": "9.1.22",
//	    "errorFlag": null
//	  }
//	}
type DownloadState struct {
	SoftwareConfig

	// LocalPath is the currently retained installer. Empty when nothing was downloaded yet.
	LocalPath string `json:"localPath,omitempty"`

	// Version is the last detected version token.
	Version string `json:"version,omitempty"`

	// ErrorFlag holds the last processing error message, nil after a clean pass.
	ErrorFlag *string `json:"errorFlag"`
}

// State maps software titles to their download state.
type State map[string]DownloadState

// Merge returns a new DownloadState whose config fields come from cfg and whose
// state fields (LocalPath, Version, ErrorFlag) are carried over from prev.
func Merge(prev DownloadState, cfg SoftwareConfig) DownloadState {
	next := DownloadState{
		SoftwareConfig: cfg,
		LocalPath:      prev.LocalPath,
		Version:        prev.Version,
	}
	if prev.ErrorFlag != nil {
		msg := *prev.ErrorFlag
		next.ErrorFlag = &msg
	}
	return next
}

// Failed reports whether the last run recorded an error for this title.
func (d DownloadState) Failed() bool {
	return d.ErrorFlag != nil
}

// SetError records err as the title's error flag. A nil err clears the flag.
func (d *DownloadState) SetError(err error) {
	if err == nil {
		d.ErrorFlag = nil
		return
	}
	msg := err.Error()
	d.ErrorFlag = &msg
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := make(State, len(s))
	for title, d := range s {
		out[title] = Merge(d, d.SoftwareConfig)
	}
	return out
}
