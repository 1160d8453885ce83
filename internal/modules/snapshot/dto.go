package snapshot

type CreateSnapshotsRequest struct {
	VariantIDs []int64 `json:"variant_ids" binding:"required,min=1,dive,gt=0"`
	// Overwrite defaults to true.
	Overwrite *bool `json:"overwrite"`
}

func (r CreateSnapshotsRequest) ShouldOverwrite() bool {
	return r.Overwrite == nil || *r.Overwrite
}
