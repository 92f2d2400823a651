package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/khapung280/RENTNEST-sub000/internal/model"
)

// greetingTokens are matched exactly or as a prefix of the input.
var greetingTokens = []string{
	"hello",
	"hi",
	"hey",
	"namaste",
	"hola",
	"good morning",
	"good afternoon",
	"good evening",
	"greetings",
}

var (
	pricingRe = regexp.MustCompile(`(?i)\b(discount|discounts|pricing|fair\s*-?\s*flex|fairflex|offers?)\b`)
	bookingRe = regexp.MustCompile(`(?i)\b(book|booking|reserve|reservation|how to rent|rental process)\b`)
)

const (
	greetingReply = "Namaste! Welcome to RentNest. I can help you find rental properties — " +
		"try asking for something like '2 bedroom flat in Kathmandu under 20000'."

	pricingReply = "RentNest rent is quoted per month, and longer stays earn FairFlex discounts: " +
		"1 month has no discount, 3 months takes 5% off, 6 months takes 10% off, and " +
		"12 months takes 15% off. Eligible listings show the discounted rate automatically."

	bookingReply = "Booking a property takes four steps:\n" +
		"1. Search for a property that fits your needs.\n" +
		"2. Open the listing and pick your check-in and check-out dates.\n" +
		"3. Submit the booking request — it starts as pending.\n" +
		"4. The owner confirms or declines it; track the status under My Bookings."

	noInventoryReply = "There are no properties listed right now. Please check back soon — " +
		"new listings are added regularly."

	helpReply = "You can search by telling me what you need — a location, budget, property type " +
		"or bedroom count. For example: 'flat in Lalitpur under 18000' or " +
		"'3 bedroom house in Pokhara for a family'."
)

// AssistantService composes natural-language replies to user messages using
// an ordered list of intent rules; the first matching rule wins.
type AssistantService struct {
	search      *SearchService
	props       PropertyStore
	resultLimit int
	logger      *zap.Logger
	rules       []intentRule
}

type intentRule struct {
	match  func(ctx context.Context, input string) (bool, error)
	handle func(ctx context.Context, input string) (*model.ChatResponse, error)
}

// NewAssistantService creates a new assistant service
func NewAssistantService(search *SearchService, props PropertyStore, resultLimit int, logger *zap.Logger) *AssistantService {
	s := &AssistantService{
		search:      search,
		props:       props,
		resultLimit: resultLimit,
		logger:      logger,
	}

	// Priority order is load-bearing: greetings and canned explainers are
	// checked before the inventory gate, and the inventory gate before any
	// query parsing.
	s.rules = []intentRule{
		{s.matchGreeting, s.handleGreeting},
		{s.matchPricing, s.handlePricing},
		{s.matchBooking, s.handleBooking},
		{s.matchNoInventory, s.handleNoInventory},
	}
	return s
}

// Respond produces a reply for any input; there is no unhandled terminal state.
func (s *AssistantService) Respond(ctx context.Context, message string) (*model.ChatResponse, error) {
	input := strings.TrimSpace(message)

	for _, rule := range s.rules {
		ok, err := rule.match(ctx, input)
		if err != nil {
			return nil, err
		}
		if ok {
			return rule.handle(ctx, input)
		}
	}

	return s.handleSearch(ctx, input)
}

func (s *AssistantService) matchGreeting(_ context.Context, input string) (bool, error) {
	lower := strings.ToLower(input)
	for _, token := range greetingTokens {
		if lower == token {
			return true, nil
		}
		if strings.HasPrefix(lower, token) {
			rest := lower[len(token):]
			if rest == "" || rest[0] == ' ' || rest[0] == ',' || rest[0] == '!' || rest[0] == '.' {
				return true, nil
			}
		}
	}
	return false, nil
}

func (s *AssistantService) handleGreeting(context.Context, string) (*model.ChatResponse, error) {
	return &model.ChatResponse{
		Type:       model.ResponseGreeting,
		Message:    greetingReply,
		Properties: []model.ScoredProperty{},
	}, nil
}

func (s *AssistantService) matchPricing(_ context.Context, input string) (bool, error) {
	return pricingRe.MatchString(input), nil
}

func (s *AssistantService) handlePricing(context.Context, string) (*model.ChatResponse, error) {
	return &model.ChatResponse{
		Type:       model.ResponsePricingInfo,
		Message:    pricingReply,
		Properties: []model.ScoredProperty{},
	}, nil
}

func (s *AssistantService) matchBooking(_ context.Context, input string) (bool, error) {
	return bookingRe.MatchString(input), nil
}

func (s *AssistantService) handleBooking(context.Context, string) (*model.ChatResponse, error) {
	return &model.ChatResponse{
		Type:       model.ResponseBookingInfo,
		Message:    bookingReply,
		Properties: []model.ScoredProperty{},
	}, nil
}

func (s *AssistantService) matchNoInventory(ctx context.Context, _ string) (bool, error) {
	count, err := s.props.CountLive(ctx)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func (s *AssistantService) handleNoInventory(context.Context, string) (*model.ChatResponse, error) {
	return &model.ChatResponse{
		Type:       model.ResponseNoInventory,
		Message:    noInventoryReply,
		Properties: []model.ScoredProperty{},
	}, nil
}

func (s *AssistantService) handleSearch(ctx context.Context, input string) (*model.ChatResponse, error) {
	parsed := ParseQuery(input)

	if !IsSearchQuery(parsed) {
		return &model.ChatResponse{
			Type:       model.ResponseHelp,
			Message:    helpReply,
			Properties: []model.ScoredProperty{},
			Parsed:     parsed,
		}, nil
	}

	results, err := s.search.SearchParsed(ctx, parsed, 0)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return &model.ChatResponse{
			Type:       model.ResponseNoResults,
			Message:    s.noResultsMessage(parsed),
			Properties: []model.ScoredProperty{},
			Parsed:     parsed,
		}, nil
	}

	top := results[0]
	attached := results
	if len(attached) > s.resultLimit {
		attached = attached[:s.resultLimit]
	}

	return &model.ChatResponse{
		Type:       model.ResponseSearch,
		Message:    s.resultsMessage(parsed, len(results), &top),
		Properties: attached,
		Parsed:     parsed,
	}, nil
}

// noResultsMessage suggests loosening only the filters the user actually supplied
func (s *AssistantService) noResultsMessage(parsed *model.ParsedQuery) string {
	supplied := []string{}
	if parsed.MinPrice != nil || parsed.MaxPrice != nil {
		supplied = append(supplied, "budget")
	}
	if parsed.Location != nil {
		supplied = append(supplied, "location")
	}
	if parsed.Bedrooms != nil {
		supplied = append(supplied, "bedroom count")
	}
	if parsed.Type != nil {
		supplied = append(supplied, "property type")
	}
	if len(parsed.Preferences) > 0 {
		supplied = append(supplied, "preferences")
	}

	if len(supplied) == 0 {
		return "I couldn't find any properties matching your search. Try a broader query."
	}
	return fmt.Sprintf("I couldn't find any properties matching your search. Try adjusting your %s.",
		joinNaturally(supplied))
}

func (s *AssistantService) resultsMessage(parsed *model.ParsedQuery, total int, top *model.ScoredProperty) string {
	noun := "properties"
	if total == 1 {
		noun = "property"
	}

	msg := fmt.Sprintf("I found %d %s for you. Top pick: %s in %s — %d bedroom at Rs %.0f/month. %s",
		total, noun, top.Title, top.Location, top.Bedrooms, top.Price, s.whyRecommended(parsed, top))
	return msg
}

// whyRecommended concatenates the reason templates whose conditions hold
func (s *AssistantService) whyRecommended(parsed *model.ParsedQuery, top *model.ScoredProperty) string {
	reasons := []string{}

	if label, ok := preferredLabel(parsed); ok && label == top.BestFor {
		reasons = append(reasons, fmt.Sprintf("It's rated best for %s.", strings.ToLower(top.BestFor)))
	}
	if top.ConfidenceScore >= 70 {
		reasons = append(reasons, fmt.Sprintf("It has a high confidence score of %d/100.", top.ConfidenceScore))
	}
	if parsed.Duration != nil && top.FairFlex != nil && top.FairFlex.Eligible && top.FairFlex.TotalSavings > 0 {
		reasons = append(reasons, fmt.Sprintf("Staying %d months saves you Rs %.0f with FairFlex.",
			top.FairFlex.DurationMonths, top.FairFlex.TotalSavings))
	}
	if parsed.MaxPrice != nil && top.Price <= *parsed.MaxPrice {
		reasons = append(reasons, "It fits within your budget.")
	}
	if parsed.Location != nil && strings.EqualFold(*parsed.Location, top.Location) {
		reasons = append(reasons, fmt.Sprintf("It's right in %s.", top.Location))
	}

	if len(reasons) == 0 {
		return "It's one of the best matches available right now."
	}
	return strings.Join(reasons, " ")
}

// preferredLabel maps a requested preference tag to its best-for label
func preferredLabel(parsed *model.ParsedQuery) (string, bool) {
	switch {
	case parsed.HasPreference(model.PrefFamily):
		return BestForFamily, true
	case parsed.HasPreference(model.PrefStudents):
		return BestForStudents, true
	case parsed.HasPreference(model.PrefProfessionals):
		return BestForProfessionals, true
	case parsed.HasPreference(model.PrefQuiet):
		return BestForQuietLiving, true
	}
	return "", false
}

func joinNaturally(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " or " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " or " + items[len(items)-1]
	}
}
