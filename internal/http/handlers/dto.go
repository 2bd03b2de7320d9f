package handlers

import "github.com/rogerio-castellano/listing-tracker/internal/models"

type ProductRequest struct {
	Artikul string `json:"artikul"`
}

type ProductResult struct {
	Message string         `json:"message"`
	Product models.Product `json:"product"`
}

type SubscribeResult struct {
	Status  string `json:"status"` // "created" or "already_exists"
	Artikul string `json:"artikul"`
}

type SyncTriggerResult struct {
	Status string `json:"status"` // "started" or "busy"
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string `json:"token"`
}
