package services

import "strings"

// ChatbotService answers common storefront questions with canned replies.
// Anything it does not recognize gets the generic fallback.
type ChatbotService struct{}

// NewChatbotService creates a new ChatbotService.
func NewChatbotService() *ChatbotService {
	return &ChatbotService{}
}

type chatbotRule struct {
	keywords []string
	reply    string
}

var chatbotRules = []chatbotRule{
	{
		keywords: []string{"shipping", "delivery"},
		reply:    "Standard shipping is $5.99, express $14.99, overnight $24.99. Shipping is free on orders over $100.",
	},
	{
		keywords: []string{"return", "refund"},
		reply:    "Unopened perfumes can be returned within 30 days for a full refund.",
	},
	{
		keywords: []string{"promo", "discount", "coupon"},
		reply:    "You can apply a promo code on the checkout page. Codes are validated against your order total.",
	},
	{
		keywords: []string{"recommend", "suggest", "gift"},
		reply:    "Browse our catalogue by category (floral, woody, or fresh) to find a scent that fits.",
	},
	{
		keywords: []string{"order", "track"},
		reply:    "You can see all your orders and their status on the Orders page after logging in.",
	},
}

// Reply returns the canned answer for a customer message.
func (s *ChatbotService) Reply(message string) string {
	lower := strings.ToLower(message)
	for _, rule := range chatbotRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.reply
			}
		}
	}
	return "I'm not sure about that one. Try asking about shipping, returns, promo codes, or your orders."
}
