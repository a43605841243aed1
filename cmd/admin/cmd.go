package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"golang.org/x/term"

	"lemuel.com/eduspaceadmin/internal/entity"
	"lemuel.com/eduspaceadmin/internal/forms"
	"lemuel.com/eduspaceadmin/internal/modules/promotion"
	"lemuel.com/eduspaceadmin/internal/session"
	"lemuel.com/eduspaceadmin/pkg/apperror"

	academicYearService "lemuel.com/eduspaceadmin/internal/modules/academicyear/service"
	authDto "lemuel.com/eduspaceadmin/internal/modules/auth/dto"
	authService "lemuel.com/eduspaceadmin/internal/modules/auth/service"
	promotionService "lemuel.com/eduspaceadmin/internal/modules/promotion/service"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp        = errors.New("help provided")
	errNotLoggedIn = errors.New("not logged in, run: admin login -email EMAIL")
)

type commandLine struct {
	out       io.Writer
	store     session.Store
	auth      authService.AuthService
	years     academicYearService.AcademicYearService
	promotion promotionService.PromotionService
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -email EMAIL [-admin]        - sign in, the password is prompted")
	fmt.Fprintln(cli.out, "  logout                             - end the stored session")
	fmt.Fprintln(cli.out, "  whoami                             - show the signed-in user")
	fmt.Fprintln(cli.out, "  years [-select ID|current]         - list academic years or switch the viewed one")
	fmt.Fprintln(cli.out, "  promote preview [-q SEARCH]        - compute who moves up or graduates")
	fmt.Fprintln(cli.out, "  promote exclude -student ID        - toggle a student out of the batch")
	fmt.Fprintln(cli.out, "  promote confirm -yes               - apply the previewed batch")
	fmt.Fprintln(cli.out, "  promote cancel                     - discard the wizard")
	fmt.Fprintln(cli.out, "  promote history [-id ID]           - list past batches or show one")
	fmt.Fprintln(cli.out, "  promote undo -id ID -yes           - revert an applied batch")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()

	switch args[1] {
	case "login":
		return cli.login(ctx, args[2:])
	case "logout":
		return cli.logout(ctx)
	case "whoami":
		return cli.whoami(ctx)
	case "years":
		return cli.listYears(ctx, args[2:])
	case "promote":
		return cli.promote(ctx, args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func (cli *commandLine) session(ctx context.Context) (*session.Session, error) {
	s, err := cli.store.Get(ctx, "")
	if errors.Is(err, session.ErrNotFound) {
		return nil, errNotLoggedIn
	}
	return s, err
}

func (cli *commandLine) login(ctx context.Context, args []string) error {
	loginCmd := cli.newFlagSet("login")
	email := loginCmd.String("email", "", "The account email. The password will be prompted next.")
	admin := loginCmd.Bool("admin", false, "Use the admin sign-in endpoint.")
	if err := loginCmd.Parse(args); err != nil {
		return errHelp
	}
	if *email == "" {
		loginCmd.Usage()
		return errHelp
	}

	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return err
	}
	if len(pwd) == 0 {
		loginCmd.Usage()
		return errHelp
	}

	var modal forms.Modal[authDto.LoginInput]
	modal.Open(&authDto.LoginInput{Email: *email, Password: string(pwd), Admin: *admin})

	var res *authDto.AuthResponse
	err = modal.Submit(ctx, func(ctx context.Context, in authDto.LoginInput) error {
		var err error
		res, err = cli.auth.Login(ctx, in)
		return err
	})
	if err != nil {
		for field, msg := range modal.Errors() {
			fmt.Fprintf(cli.out, "  %s: %s\n", field, msg)
		}
		if msg := modal.GeneralError(); msg != "" {
			return errors.New(msg)
		}
		return err
	}

	fmt.Fprintf(cli.out, "Signed in as %s (%s), session valid until %s\n",
		res.User.DisplayName(), res.User.Role, res.ExpiresAt.Local().Format("2006-01-02 15:04"))
	return nil
}

func (cli *commandLine) logout(ctx context.Context) error {
	s, err := cli.session(ctx)
	if err != nil {
		return err
	}
	if err := cli.auth.Logout(ctx, s.ID); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "Signed out")
	return nil
}

func (cli *commandLine) whoami(ctx context.Context) error {
	s, err := cli.session(ctx)
	if err != nil {
		return err
	}
	res, err := cli.auth.Me(ctx, s)
	if err != nil {
		return err
	}

	fmt.Fprintf(cli.out, "%s <%s>\n", res.User.DisplayName(), res.User.Email)
	fmt.Fprintf(cli.out, "role: %s\n", res.User.Role)
	if y := res.Context.SelectedYear; y != nil {
		fmt.Fprintf(cli.out, "viewing: %s", y.Name)
		if res.Context.HistoricalMode {
			fmt.Fprint(cli.out, " (read only)")
		}
		fmt.Fprintln(cli.out)
	}
	keys := make([]string, 0, len(res.Navigation))
	for _, item := range res.Navigation {
		keys = append(keys, item.Key)
	}
	fmt.Fprintf(cli.out, "sections: %s\n", strings.Join(keys, ", "))
	return nil
}

func (cli *commandLine) listYears(ctx context.Context, args []string) error {
	yearsCmd := cli.newFlagSet("years")
	selectYear := yearsCmd.String("select", "", "Year id to view, or \"current\" to go back to live data.")
	if err := yearsCmd.Parse(args); err != nil {
		return errHelp
	}

	s, err := cli.session(ctx)
	if err != nil {
		return err
	}
	yc, err := cli.years.Context(ctx, s)
	if err != nil {
		return err
	}
	if *selectYear != "" {
		if yc, err = cli.years.SelectYear(ctx, s, *selectYear); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "\tID\tNAME\tSTART\tEND\t")
	for _, y := range yc.AllYears {
		marker := " "
		if yc.SelectedYear != nil && yc.SelectedYear.ID == y.ID {
			marker = ">"
		}
		name := y.Name
		if y.IsCurrent {
			name += " (current)"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t\n", marker, y.ID, name, y.StartDate, y.EndDate)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if yc.IsHistoricalMode() {
		fmt.Fprintln(cli.out, "Historical mode: write actions are disabled")
	}
	return nil
}

func (cli *commandLine) promote(ctx context.Context, args []string) error {
	if len(args) == 0 {
		cli.printUsage()
		return errHelp
	}
	s, err := cli.session(ctx)
	if err != nil {
		return err
	}
	if !entity.Can(s.User.Role, entity.CapRunPromotion) {
		return apperror.ErrForbidden
	}

	switch args[0] {
	case "preview":
		previewCmd := cli.newFlagSet("promote preview")
		query := previewCmd.String("q", "", "Only list students matching this text.")
		if err := previewCmd.Parse(args[1:]); err != nil {
			return errHelp
		}
		if _, err := cli.promotion.Start(ctx, s); err != nil {
			return err
		}
		if _, err := cli.promotion.Preview(ctx, s); err != nil {
			return err
		}
		view, err := cli.promotion.Wizard(ctx, s, query)
		if err != nil {
			return err
		}
		return cli.printWizard(view)

	case "exclude":
		excludeCmd := cli.newFlagSet("promote exclude")
		studentID := excludeCmd.Int("student", 0, "Student id to toggle.")
		if err := excludeCmd.Parse(args[1:]); err != nil {
			return errHelp
		}
		if *studentID <= 0 {
			excludeCmd.Usage()
			return errHelp
		}
		view, err := cli.promotion.ToggleExclusion(ctx, s, *studentID)
		if err != nil {
			return err
		}
		return cli.printWizard(view)

	case "confirm":
		confirmCmd := cli.newFlagSet("promote confirm")
		yes := confirmCmd.Bool("yes", false, "Apply the batch. Without it nothing is sent.")
		if err := confirmCmd.Parse(args[1:]); err != nil {
			return errHelp
		}
		if !*yes {
			return apperror.ErrConfirmationRequired
		}
		view, err := cli.promotion.Confirm(ctx, s)
		if err != nil {
			if view.Error != "" {
				return errors.New(view.Error)
			}
			return err
		}
		if view.Result != nil {
			fmt.Fprintf(cli.out, "%s: %d promoted, %d graduated\n",
				view.Result.Message, view.Result.PromotedCount, view.Result.GraduatedCount)
		}
		return cli.promotion.Close(ctx, s)

	case "cancel":
		return cli.promotion.Close(ctx, s)

	case "history":
		historyCmd := cli.newFlagSet("promote history")
		id := historyCmd.Int("id", 0, "Show the rows of one batch.")
		if err := historyCmd.Parse(args[1:]); err != nil {
			return errHelp
		}
		if *id > 0 {
			detail, err := cli.promotion.HistoryDetail(ctx, s, *id)
			if err != nil {
				return err
			}
			return cli.printCandidates(detail.Details, nil)
		}
		h, err := cli.promotion.History(ctx, s)
		if err != nil {
			return err
		}
		return cli.printHistory(h)

	case "undo":
		undoCmd := cli.newFlagSet("promote undo")
		id := undoCmd.Int("id", 0, "Batch id to revert.")
		yes := undoCmd.Bool("yes", false, "Revert the batch. Without it nothing is sent.")
		if err := undoCmd.Parse(args[1:]); err != nil {
			return errHelp
		}
		if *id <= 0 {
			undoCmd.Usage()
			return errHelp
		}
		h, err := cli.promotion.Undo(ctx, s, *id, *yes)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Batch %d reverted\n", *id)
		return cli.printHistory(h)

	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) printWizard(view promotion.View) error {
	if view.FromYear != nil && view.ToYear != nil {
		fmt.Fprintf(cli.out, "%s -> %s\n", *view.FromYear, *view.ToYear)
	}
	fmt.Fprintf(cli.out, "promoted: %d of %d, graduated: %d of %d\n",
		view.Counts.Promoted, view.Total.Promoted, view.Counts.Graduated, view.Total.Graduated)

	rows := append(append([]promotion.CandidateRow{}, view.Promoted...), view.Graduated...)
	candidates := make([]entity.PromotionCandidate, len(rows))
	excluded := make(map[int]bool, len(view.Excluded))
	for i, row := range rows {
		candidates[i] = row.PromotionCandidate
		excluded[row.StudentID] = row.Excluded
	}
	return cli.printCandidates(candidates, excluded)
}

func (cli *commandLine) printCandidates(rows []entity.PromotionCandidate, excluded map[int]bool) error {
	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "\tID\tNAME\tFROM\tTO\tSTATUS\t")
	for _, c := range rows {
		marker := " "
		if excluded[c.StudentID] {
			marker = "x"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\t\n", marker, c.StudentID, c.StudentName,
			placement(c.OldGrade, c.OldClass), placement(c.NewGrade, c.NewClass), c.Status)
	}
	return w.Flush()
}

func (cli *commandLine) printHistory(h *promotion.HistoryBrowser) error {
	items := append([]entity.PromotionHistory{}, h.Items...)
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })

	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tBY\tPROMOTED\tGRADUATED\tSTATUS\t")
	for _, item := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%s\t\n", item.ID, item.CreatedAt.Local().Format("2006-01-02 15:04"),
			item.PerformedBy, item.PromotedCount, item.GraduatedCount, item.Status)
	}
	return w.Flush()
}

func placement(grade *int, class *string) string {
	parts := make([]string, 0, 2)
	if grade != nil {
		parts = append(parts, "grade "+strconv.Itoa(*grade))
	}
	if class != nil {
		parts = append(parts, *class)
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}
