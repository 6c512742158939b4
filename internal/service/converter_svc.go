package service

import (
	"bookcourier/internal/api/dto"
	"bookcourier/internal/model"
)

// ==================== Model → DTO 转换 ====================

func toUserInfo(u *model.User) dto.UserInfo {
	return dto.UserInfo{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Image:     u.Image,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func toBookInfo(b *model.Book) dto.BookInfo {
	return dto.BookInfo{
		ID:             b.ID,
		Title:          b.Title,
		Author:         b.Author,
		Price:          b.GetPrice(),
		Description:    b.Description,
		Image:          b.Image,
		Tags:           []string(b.Tags),
		Status:         b.Status,
		LibrarianEmail: b.LibrarianEmail,
		CreatedAt:      b.CreatedAt,
	}
}

func toBookInfoList(books []model.Book) []dto.BookInfo {
	list := make([]dto.BookInfo, len(books))
	for i := range books {
		list[i] = toBookInfo(&books[i])
	}
	return list
}

func toOrderInfo(o *model.Order) dto.OrderInfo {
	return dto.OrderInfo{
		ID:              o.ID,
		BookID:          o.BookID,
		BookTitle:       o.BookTitle,
		Price:           o.GetPrice(),
		Status:          o.Status,
		PaymentStatus:   o.PaymentStatus,
		ShippingAddress: map[string]interface{}(o.ShippingAddress),
		CreatedAt:       o.CreatedAt,
	}
}

func toOrderInfoList(orders []model.Order) []dto.OrderInfo {
	list := make([]dto.OrderInfo, len(orders))
	for i := range orders {
		list[i] = toOrderInfo(&orders[i])
	}
	return list
}
