package dto

import (
	"time"

	"github.com/conftrack/paper-review-api/internal/models"
)

// TagDTO represents a tag in API responses
type TagDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// PaperDTO represents a paper in API responses. publicationDate and
// publishedByCommittee are null together until the paper is published.
type PaperDTO struct {
	ID                   uint64     `json:"id"`
	Title                string     `json:"title"`
	AbstractText         string     `json:"abstractText"`
	Content              string     `json:"content"`
	PublicationDate      *time.Time `json:"publicationDate"`
	Author               *UserDTO   `json:"author,omitempty"`
	PublishedByCommittee *UserDTO   `json:"publishedByCommittee"`
	Tags                 []TagDTO   `json:"tags"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

// ToTagDTO converts a Tag model to TagDTO
func ToTagDTO(tag models.Tag) TagDTO {
	return TagDTO{
		ID:          tag.ID,
		Name:        tag.Name,
		Description: tag.Description,
	}
}

// ToPaperDTO converts a Paper model to PaperDTO
func ToPaperDTO(paper models.Paper) PaperDTO {
	dto := PaperDTO{
		ID:              paper.ID,
		Title:           paper.Title,
		AbstractText:    paper.AbstractText,
		Content:         paper.Content,
		PublicationDate: paper.PublicationDate,
		CreatedAt:       paper.CreatedAt,
		UpdatedAt:       paper.UpdatedAt,
		Tags:            make([]TagDTO, len(paper.Tags)),
	}

	if paper.Author.ID != 0 {
		author := ToUserDTO(paper.Author)
		dto.Author = &author
	}

	if paper.PublishedByCommittee != nil && paper.PublishedByCommittee.ID != 0 {
		publisher := ToUserDTO(*paper.PublishedByCommittee)
		dto.PublishedByCommittee = &publisher
	}

	for i, tag := range paper.Tags {
		dto.Tags[i] = ToTagDTO(tag)
	}

	return dto
}

// ToPaperDTOs converts a slice of papers
func ToPaperDTOs(papers []models.Paper) []PaperDTO {
	dtos := make([]PaperDTO, len(papers))
	for i, paper := range papers {
		dtos[i] = ToPaperDTO(paper)
	}
	return dtos
}
