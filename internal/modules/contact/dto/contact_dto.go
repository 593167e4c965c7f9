package dto

type CreateContactRequest struct {
	Name         string  `json:"name" binding:"required,max=100"`
	Phone        string  `json:"phone" binding:"required,max=32"`
	Relationship string  `json:"relationship" binding:"required,max=50"`
	Email        *string `json:"email,omitempty" binding:"omitempty,email"`
	IsSelf       bool    `json:"is_self"`
}

type DeleteContactRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type SearchContactsRequest struct {
	Query string `form:"q" binding:"required"`
}
