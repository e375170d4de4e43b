package notifier

import (
	"fmt"

	"github.com/amrokhaled/future-diplomates-api/internal/config"
	"github.com/amrokhaled/future-diplomates-api/internal/models"
	"github.com/bwmarrin/discordgo"
)

type Notifier interface {
	NotifyBooking(booking *models.Booking) error
}

// DiscordNotifier announces new bookings to the ops channel. Delivery
// failures are the caller's to log; a booking is never rolled back over a
// missed notification.
type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordNotifier(cfg *config.Config) (*DiscordNotifier, error) {
	if cfg.DiscordBotToken == "" || cfg.DiscordNotificationsChannelID == "" {
		return nil, fmt.Errorf("discord notifier not configured")
	}
	session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
	if err != nil {
		return nil, err
	}
	return &DiscordNotifier{
		session:   session,
		channelID: cfg.DiscordNotificationsChannelID,
	}, nil
}

func (n *DiscordNotifier) NotifyBooking(booking *models.Booking) error {
	accommodation := "no"
	if booking.Accommodation {
		accommodation = "yes"
	}

	message := fmt.Sprintf("📋 **New Registration**\n**Reference:** %s\n**Attendee:** %s (%s)\n**Package:** %s ($%s)\n**Accommodation:** %s",
		booking.BookingReference,
		booking.AttendeeName,
		booking.AttendeeEmail,
		booking.PackageType,
		booking.Amount.String(),
		accommodation,
	)

	_, err := n.session.ChannelMessageSend(n.channelID, message)
	return err
}
