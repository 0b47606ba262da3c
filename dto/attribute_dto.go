package dto

import "recipe-api/models"

type CreateAttributeInput struct {
	Name string `json:"name" binding:"required,max=255"`
}

type AttributeResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func NewAttributeResponse[T models.Attribute](item T) AttributeResponse {
	return AttributeResponse{ID: item.GetID(), Name: item.GetName()}
}

func NewAttributeResponses[T models.Attribute](items []T) []AttributeResponse {
	responses := make([]AttributeResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, NewAttributeResponse(item))
	}
	return responses
}
