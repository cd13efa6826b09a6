package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fadilmartias/mock-interview/internal/apperror"
	"github.com/fadilmartias/mock-interview/internal/dto"
	"github.com/fadilmartias/mock-interview/internal/model"
	"github.com/fadilmartias/mock-interview/internal/usecase"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var errQuit = errors.New("interview aborted")

func newPlayCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Bắt đầu một buổi phỏng vấn",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := app.play(cmd.Context())
			if errors.Is(err, errQuit) || errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				fmt.Println(gray("Tạm biệt!"))
				return nil
			}
			return err
		},
	}
}

func (a *cliApp) play(ctx context.Context) error {
	flow := usecase.NewFlow(a.interviews.Create)

	fmt.Println(landing())
	if configured, _, err := a.credentials.Status(ctx); err == nil && !configured {
		fmt.Println(yellow("API key chưa được cấu hình. Chạy `mock-interview credential set` trước."))
	}
	if !confirm("Bắt đầu phỏng vấn") {
		return errQuit
	}
	if err := flow.Begin(); err != nil {
		return err
	}

	for {
		profile, err := promptProfile()
		if err != nil {
			return err
		}

		session, err := flow.SubmitProfile(ctx, profile)
		if session == nil {
			if apperror.IsValidation(err) {
				fmt.Println(red(err.Error()))
				continue
			}
			return err
		}

		if err := a.interview(ctx, session, err); err != nil {
			return err
		}
		if err := flow.Finish(); err != nil {
			return err
		}

		fmt.Println(gray("Đang tổng hợp kết quả..."))
		report, err := session.Report(ctx)
		if err != nil {
			fmt.Println(red("Lỗi tạo báo cáo."), gray(err.Error()))
		} else {
			fmt.Println(reportBlock(dto.NewReportView(session.ID(), session.Profile(), report)))
		}

		if !confirm("Phỏng vấn lại") {
			return nil
		}
		flow.Restart()
	}
}

// interview runs one session until it completes. initErr is the outcome of
// the HR round initialisation.
func (a *cliApp) interview(ctx context.Context, s *usecase.InterviewSession, initErr error) error {
	err := initErr
	announced := model.Round("")

	for {
		if err != nil {
			if !apperror.IsGeneration(err) || s.State() != usecase.StateAwaitingRoundInit {
				return err
			}
			fmt.Println(red("Không thể chuẩn bị câu hỏi: "), gray(err.Error()))
			if !confirm("Thử lại") {
				return errQuit
			}
			fmt.Println(gray(fmt.Sprintf("Đang kết nối với phòng %s...", s.Round())))
			err = s.InitRound(ctx, s.Round())
			continue
		}

		snap := s.Snapshot()
		switch snap.State {
		case usecase.StateSessionComplete:
			return nil

		case usecase.StateQuestionActive:
			if snap.Round != announced {
				announced = snap.Round
				fmt.Println(roundHeader(snap.Round, a.roster.Title(snap.Round)))
				fmt.Println(personaCard(*snap.Persona))
			}
			fmt.Println(questionBlock(snap))

			answer, perr := promptAnswer()
			if perr != nil {
				return perr
			}
			if terr := s.TypeAnswer(answer); terr != nil {
				return terr
			}
			fmt.Println(gray("Đang chấm điểm..."))
			eval, serr := s.SubmitAnswer(ctx, answer)
			switch {
			case apperror.IsValidation(serr):
				fmt.Println(yellow("Vui lòng nhập câu trả lời."))
			case apperror.IsGeneration(serr):
				fmt.Println(red("Không thể chấm điểm câu trả lời: "), gray(serr.Error()))
			case serr != nil:
				return serr
			default:
				fmt.Println(evaluationBlock(snap.Persona, eval))
			}

		case usecase.StateAnswerSubmitted, usecase.StateRoundComplete:
			label := "Câu tiếp theo"
			next, hasNext := snap.Round.Next()
			if snap.State == usecase.StateRoundComplete {
				label = "Xem kết quả"
				if hasNext {
					label = "Sang vòng tiếp theo"
				}
			}
			if !confirm(label) {
				return errQuit
			}
			if snap.State == usecase.StateRoundComplete && hasNext {
				fmt.Println(gray(fmt.Sprintf("Đang kết nối với phòng %s...", next)))
			}
			err = s.Next(ctx)

		case usecase.StateAwaitingRoundInit:
			err = s.InitRound(ctx, snap.Round)
		}
	}
}

func promptProfile() (model.Profile, error) {
	for {
		name, err := (&promptui.Prompt{Label: "Họ và tên", Validate: required}).Run()
		if err != nil {
			return model.Profile{}, err
		}
		role, err := (&promptui.Prompt{Label: "Vị trí ứng tuyển", Default: "Kế toán thuế", Validate: required}).Run()
		if err != nil {
			return model.Profile{}, err
		}

		levels := make([]string, len(model.ExperienceLevels))
		for i, l := range model.ExperienceLevels {
			levels[i] = string(l)
		}
		_, level, err := (&promptui.Select{Label: "Kinh nghiệm", Items: levels}).Run()
		if err != nil {
			return model.Profile{}, err
		}

		confidence, err := (&promptui.Prompt{
			Label:   fmt.Sprintf("Mức độ tự tin (%d-%d)", model.MinConfidence, model.MaxConfidence),
			Default: "5",
			Validate: func(s string) error {
				n, err := strconv.Atoi(strings.TrimSpace(s))
				if err != nil || n < model.MinConfidence || n > model.MaxConfidence {
					return fmt.Errorf("nhập số từ %d đến %d", model.MinConfidence, model.MaxConfidence)
				}
				return nil
			},
		}).Run()
		if err != nil {
			return model.Profile{}, err
		}
		n, _ := strconv.Atoi(strings.TrimSpace(confidence))

		profile := model.Profile{
			Name:            strings.TrimSpace(name),
			ExperienceLevel: model.ExperienceLevel(level),
			TargetRole:      strings.TrimSpace(role),
			Confidence:      n,
		}
		if err := profile.Validate(); err != nil {
			fmt.Println(red(err.Error()))
			continue
		}
		return profile, nil
	}
}

// promptAnswer reads one answer. Blank input is passed through so the
// session can reject it.
func promptAnswer() (string, error) {
	return (&promptui.Prompt{Label: "Câu trả lời của bạn"}).Run()
}

func promptSecret(label string) (string, error) {
	return (&promptui.Prompt{Label: label, Mask: '*', Validate: required}).Run()
}

func confirm(label string) bool {
	_, err := (&promptui.Prompt{Label: label, IsConfirm: true, Default: "y"}).Run()
	return err == nil
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("không được để trống")
	}
	return nil
}
