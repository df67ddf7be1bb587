package model

import (
	"time"

	"nutrilens/internal/domain/entity"
)

const (
	NewsCollection   = "news"
	ReviewCollection = "reviews"
)

type NewsDocument struct {
	ID               string        `bson:"_id"`
	Title            string        `bson:"title"`
	ShortDescription string        `bson:"shortDescription"`
	Content          string        `bson:"content"`
	Image            MediaDocument `bson:"image"`
	Author           string        `bson:"author"`
	CreatedAt        time.Time     `bson:"createdAt"`
	UpdatedAt        time.Time     `bson:"updatedAt"`
}

func FromNews(n *entity.News) *NewsDocument {
	return &NewsDocument{
		ID:               n.ID.String(),
		Title:            n.Title,
		ShortDescription: n.ShortDescription,
		Content:          n.Content,
		Image:            FromMedia(n.Image),
		Author:           n.AuthorID.String(),
		CreatedAt:        n.CreatedAt,
		UpdatedAt:        n.UpdatedAt,
	}
}

func (d *NewsDocument) ToEntity() (*entity.News, error) {
	id, err := parseID("news id", d.ID)
	if err != nil {
		return nil, err
	}
	author, err := parseID("author id", d.Author)
	if err != nil {
		return nil, err
	}

	return &entity.News{
		ID:               id,
		Title:            d.Title,
		ShortDescription: d.ShortDescription,
		Content:          d.Content,
		Image:            d.Image.ToEntity(),
		AuthorID:         author,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}, nil
}

type ReviewDocument struct {
	ID        string    `bson:"_id"`
	Product   string    `bson:"product"`
	User      string    `bson:"user"`
	Comment   string    `bson:"comment"`
	Likes     int64     `bson:"likes"`
	Dislikes  int64     `bson:"dislikes"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func FromReview(r *entity.Review) *ReviewDocument {
	return &ReviewDocument{
		ID:        r.ID.String(),
		Product:   r.ProductID.String(),
		User:      r.UserID.String(),
		Comment:   r.Comment,
		Likes:     r.Likes,
		Dislikes:  r.Dislikes,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (d *ReviewDocument) ToEntity() (*entity.Review, error) {
	id, err := parseID("review id", d.ID)
	if err != nil {
		return nil, err
	}
	product, err := parseID("product id", d.Product)
	if err != nil {
		return nil, err
	}
	user, err := parseID("user id", d.User)
	if err != nil {
		return nil, err
	}

	return &entity.Review{
		ID:        id,
		ProductID: product,
		UserID:    user,
		Comment:   d.Comment,
		Likes:     d.Likes,
		Dislikes:  d.Dislikes,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}
