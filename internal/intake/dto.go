package intake

import "audiofields-backend/internal/spreadsheets"

// AudioResponse is a successfully transcribed audio.
type AudioResponse struct {
	Filename      string `json:"filename"`
	Transcription string `json:"transcription"`
}

// AnalyzeResponse is the body of a successful analyze call.
type AnalyzeResponse struct {
	Filename string                `json:"filename"`
	Fields   []string              `json:"fields"`
	Audios   []AudioResponse       `json:"audios"`
	Failed   []string              `json:"failed"`
	Excel    []spreadsheets.Column `json:"excel"`
}

type downloadRequest struct {
	Filename string `form:"filename" binding:"required"`
}

func toResponse(r Result) AnalyzeResponse {
	out := AnalyzeResponse{
		Filename: r.Filename,
		Fields:   r.Fields,
		Audios:   make([]AudioResponse, 0, len(r.Audios)),
		Failed:   r.Failed,
		Excel:    r.Excel,
	}
	if out.Failed == nil {
		out.Failed = []string{}
	}
	for _, a := range r.Audios {
		out.Audios = append(out.Audios, AudioResponse{Filename: a.Filename, Transcription: a.Transcription})
	}
	return out
}
