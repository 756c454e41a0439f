package models

import "time"

type Review struct {
	Name       string    `json:"name"`
	Rating     int       `json:"rating"`
	Review     string    `json:"review"`
	Avatar     string    `json:"avatar"`
	Date       string    `json:"date"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
}

type CreateReviewInput struct {
	Name   string `json:"name"`
	Rating int    `json:"rating"`
	Review string `json:"review"`
}
