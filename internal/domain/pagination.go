package domain

import "github.com/google/uuid"

const MaxPhotoPageSize = 200

// PhotoListParams filters the photo listing. A zero Limit means "no limit".
type PhotoListParams struct {
	CollectionID *uuid.UUID
	Limit        int
	Offset       int
}

func (p *PhotoListParams) Validate() {
	if p.Limit < 0 {
		p.Limit = 0
	}
	if p.Limit > MaxPhotoPageSize {
		p.Limit = MaxPhotoPageSize
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}
