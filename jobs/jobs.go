package jobs

import (
	"context"
	"fmt"
	"time"

	"SehatCare/mailer"
	"SehatCare/services"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const reminderSubject = "Appointment Reminder - SEHAT"

// StartDailyScheduler registers the reminder job on schedule (standard five
// field cron spec) and starts the scheduler.
func StartDailyScheduler(schedule string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		log.Info().Msg("Running daily appointment reminder job...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		sent, err := SendAppointmentReminders(ctx, services.Mailer, time.Now())
		if err != nil {
			log.Error().Err(err).Msg("Error from SendAppointmentReminders")
			return
		}
		log.Info().Int("sent", sent).Msg("appointment reminders sent")
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}

func tomorrow(now time.Time) (time.Time, time.Time) {
	y, m, d := now.Date()
	start := time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}

/*
* Fetch scheduled appointments for the next calendar day
* Mail every patient who has an email; one failed mail does not stop the rest
 */
func SendAppointmentReminders(ctx context.Context, sender mailer.Sender, now time.Time) (int, error) {
	from, to := tomorrow(now)
	appointments, err := services.FetchScheduledBetween(ctx, from, to)
	if err != nil {
		return 0, err
	}
	sent := 0
	for _, a := range appointments {
		if a.User == nil || a.User.Email == "" {
			continue
		}
		doctor := "your doctor"
		if a.Doctor != nil && a.Doctor.Name != "" {
			doctor = a.Doctor.Name
		}
		body := fmt.Sprintf("Hello %s,\n\nThis is a reminder of your appointment with %s on %s.",
			a.User.Name, doctor, a.AppointmentDate.In(now.Location()).Format("02 Jan 2006 15:04"))
		if a.MeetLink != "" {
			body += "\nJoin the consultation at " + a.MeetLink
		}
		body += "\n\nThank you for using SEHAT!"

		msg := mailer.Message{To: a.User.Email, Subject: reminderSubject, Body: body}
		if err := sender.Send(ctx, msg); err != nil {
			log.Error().Err(err).Str("appointment", a.ID.Hex()).Msg("reminder email failed")
			continue
		}
		sent++
	}
	return sent, nil
}
