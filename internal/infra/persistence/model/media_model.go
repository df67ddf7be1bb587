package model

import "nutrilens/internal/domain/entity"

// MediaDocument is an uploaded image reference.
type MediaDocument struct {
	URL    string `bson:"url"`
	FileID string `bson:"fileId"`
}

func FromMedia(m entity.Media) MediaDocument {
	return MediaDocument{URL: m.URL, FileID: m.FileID}
}

func (d MediaDocument) ToEntity() entity.Media {
	return entity.Media{URL: d.URL, FileID: d.FileID}
}
