package openopus

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/oksasatya/opus-favorites/internal/domain/entity"
)

// Open Opus encodes most scalars as strings ("id":"145", "popular":"1",
// "success":"true"); these types accept either form.

type flexInt int64

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := string(bytes.Trim(b, `"`))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

type flexBool bool

func (f *flexBool) UnmarshalJSON(b []byte) error {
	switch strings.ToLower(string(bytes.Trim(b, `"`))) {
	case "true", "1":
		*f = true
	default:
		*f = false
	}
	return nil
}

type status struct {
	Success flexBool `json:"success"`
	Error   string   `json:"error"`
}

type composerDTO struct {
	ID           flexInt `json:"id"`
	Name         string  `json:"name"`
	CompleteName string  `json:"complete_name"`
	Birth        string  `json:"birth"`
	Death        string  `json:"death"`
	Epoch        string  `json:"epoch"`
	Portrait     string  `json:"portrait"`
}

func (d composerDTO) toEntity() entity.Composer {
	return entity.Composer{
		ID:           int64(d.ID),
		Name:         d.Name,
		CompleteName: d.CompleteName,
		Birth:        d.Birth,
		Death:        d.Death,
		Epoch:        d.Epoch,
		Portrait:     d.Portrait,
	}
}

type workDTO struct {
	ID          flexInt  `json:"id"`
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle"`
	Genre       string   `json:"genre"`
	Popular     flexBool `json:"popular"`
	Recommended flexBool `json:"recommended"`
}

func (d workDTO) toEntity() entity.Work {
	return entity.Work{
		ID:          int64(d.ID),
		Title:       d.Title,
		Subtitle:    d.Subtitle,
		Genre:       d.Genre,
		Popular:     bool(d.Popular),
		Recommended: bool(d.Recommended),
	}
}

type composerListResponse struct {
	Status    status        `json:"status"`
	Composers []composerDTO `json:"composers"`
}

type workListResponse struct {
	Status   status       `json:"status"`
	Composer *composerDTO `json:"composer"`
	Works    []workDTO    `json:"works"`
}

type workDetailResponse struct {
	Status   status       `json:"status"`
	Composer *composerDTO `json:"composer"`
	Work     *workDTO     `json:"work"`
}

func composersToEntities(in []composerDTO) []entity.Composer {
	out := make([]entity.Composer, 0, len(in))
	for _, c := range in {
		out = append(out, c.toEntity())
	}
	return out
}
