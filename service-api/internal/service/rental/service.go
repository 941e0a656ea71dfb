package rental

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"path"
	"strings"
	"time"

	"car-rental/pkg/config"
	"car-rental/pkg/contract"
	"car-rental/pkg/email"
	"car-rental/pkg/events"
	"car-rental/pkg/linktoken"
	"car-rental/pkg/logger"
	"car-rental/pkg/model"
	"car-rental/pkg/storage"
	rentalRepo "car-rental/service-api/internal/repository/rental"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("rental not found")
	ErrInvalidDates  = errors.New("end date is before start date")
	ErrInvalidUpload = errors.New("invalid upload")
	ErrMissingFile   = errors.New("missing file")
)

const (
	defaultPageSize = 20
	maxPageSize     = 100

	expiryLayout = "January 2, 2006"
)

// linkRoutes maps the phase a token carries to the frontend page that opens it
var linkRoutes = map[linktoken.Phase]string{
	linktoken.PhaseDraft:        "customer-info",
	linktoken.PhaseAdminPickup:  "pickup-instructions",
	linktoken.PhaseAdminDropoff: "dropoff-instructions",
	linktoken.PhaseOut:          "mileage-out",
	linktoken.PhaseIn:           "mileage-in",
	linktoken.PhaseSigned:       "signed-contract",
}

// signedContractTypes narrows the general upload types for the signed contract
var signedContractTypes = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Service defines the rental workflow service interface. Link steps receive
// the payload already consumed by the link middleware.
type Service interface {
	CreateDraft(ctx context.Context, req *model.CreateRentalRequest) (*model.CreateRentalResponse, error)
	ListRentals(ctx context.Context, page, pageSize int) (*model.RentalListResponse, error)
	GetDetail(ctx context.Context, folderID string) (*model.RentalDetail, error)
	OpenFile(ctx context.Context, path string) (io.ReadCloser, *storage.FileInfo, error)

	SubmitCustomerInfo(ctx context.Context, link *linktoken.Payload, packet *model.CustomerPacket, photos map[string]*multipart.FileHeader) (*model.CustomerInfoResponse, error)
	SubmitPickupInstructions(ctx context.Context, link *linktoken.Payload, instructions *model.Instructions) (*model.StepResponse, error)
	SubmitDropoffInstructions(ctx context.Context, link *linktoken.Payload, instructions *model.Instructions) (*model.StepResponse, error)
	SubmitMileageOut(ctx context.Context, link *linktoken.Payload, report *model.MileageReport, photo *multipart.FileHeader) (*model.StepResponse, error)
	SubmitMileageIn(ctx context.Context, link *linktoken.Payload, report *model.MileageReport, photo *multipart.FileHeader) (*model.StepResponse, error)
	SubmitSignedContract(ctx context.Context, link *linktoken.Payload, file *multipart.FileHeader) (*model.StepResponse, error)
}

type service struct {
	repo      rentalRepo.Repository
	storage   storage.Provider
	email     email.Provider
	publisher events.Publisher
	sequencer *linktoken.Sequencer
	config    *config.Config
	now       func() time.Time
}

// NewService creates a new rental workflow service
func NewService(
	repo rentalRepo.Repository,
	storageProvider storage.Provider,
	emailProvider email.Provider,
	publisher events.Publisher,
	sequencer *linktoken.Sequencer,
	cfg *config.Config,
) Service {
	return &service{
		repo:      repo,
		storage:   storageProvider,
		email:     emailProvider,
		publisher: publisher,
		sequencer: sequencer,
		config:    cfg,
		now:       time.Now,
	}
}

// CreateDraft allocates a rental folder, stores the record and emails the
// customer the customer-info link
func (s *service) CreateDraft(ctx context.Context, req *model.CreateRentalRequest) (*model.CreateRentalResponse, error) {
	if req.EndDate < req.StartDate {
		return nil, ErrInvalidDates
	}

	now := s.now().UTC()
	rental := model.Rental{
		FolderID:      uuid.NewString(),
		VIN:           strings.ToUpper(strings.TrimSpace(req.VIN)),
		Make:          strings.TrimSpace(req.Make),
		Model:         strings.TrimSpace(req.Model),
		Color:         strings.TrimSpace(req.Color),
		LicensePlate:  strings.TrimSpace(req.LicensePlate),
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		CostPerDay:    strings.TrimSpace(req.CostPerDay),
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Status:        model.RentalStatusDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// the draft link has to pass the customer-info checks when it comes back
	base := payloadFromRental(rental)
	next, _ := linktoken.Lookup(linktoken.StepCustomerInfo)
	if err := linktoken.CheckFields(&base, next.Required...); err != nil {
		return nil, err
	}

	tokens, err := s.sequencer.Mint(linktoken.StepCreateDraft, base)
	if err != nil {
		return nil, err
	}
	link := s.linkURL(linktoken.PhaseDraft, tokens[linktoken.PhaseDraft])

	if err := s.repo.CreateRental(ctx, &rental); err != nil {
		return nil, fmt.Errorf("failed to create rental: %w", err)
	}

	data := email.LinkTemplateData{
		RentalTemplateData: s.rentalTemplateData(rental.CustomerName, payloadFromRental(rental)),
		LinkURL:            link,
		ExpiresAt:          s.expiryLabel(linktoken.CustomerLinkTTL),
	}
	s.sendEmail(ctx, []string{rental.CustomerEmail}, email.TemplateCustomerInfoLink, data)

	s.recordEvent(ctx, model.NewEvent(rental.FolderID, model.EventRentalCreated,
		fmt.Sprintf("Draft rental created for %s", rental.CustomerEmail),
		map[string]string{"vin": rental.VIN, "start_date": rental.StartDate, "end_date": rental.EndDate},
	))

	return &model.CreateRentalResponse{
		Rental:           rental,
		CustomerInfoLink: link,
		Message:          "Rental draft created and customer info link sent",
	}, nil
}

// ListRentals returns a page of rentals, newest first
func (s *service) ListRentals(ctx context.Context, page, pageSize int) (*model.RentalListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	rentals, total, err := s.repo.ListRentals(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	return &model.RentalListResponse{
		Rentals:    rentals,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

// GetDetail gathers the record, documents, files and event log of a folder
func (s *service) GetDetail(ctx context.Context, folderID string) (*model.RentalDetail, error) {
	rental, err := s.repo.GetRental(ctx, folderID)
	if err != nil {
		if errors.Is(err, rentalRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	docs, err := s.repo.GetDocuments(ctx, folderID)
	if err != nil {
		return nil, err
	}

	objects, err := s.storage.ListObjects(ctx, folderID+"/")
	if err != nil {
		return nil, fmt.Errorf("failed to list rental files: %w", err)
	}

	files := make([]model.FileRef, 0, len(objects))
	for _, obj := range objects {
		ref := model.FileRef{
			Name:        obj.Name,
			Path:        obj.Path,
			Size:        obj.Size,
			ContentType: obj.ContentType,
			UpdatedAt:   obj.LastModified,
		}
		if signed, err := s.storage.GetSignedURL(ctx, obj.Path); err == nil {
			ref.URL = signed
		} else {
			logger.Warnf("failed to sign url for %s: %v", obj.Path, err)
		}
		files = append(files, ref)
	}

	evts, err := s.repo.ListEvents(ctx, folderID)
	if err != nil {
		return nil, err
	}

	return &model.RentalDetail{
		Rental:    *rental,
		Documents: docs,
		Files:     files,
		Events:    evts,
	}, nil
}

// OpenFile streams a stored rental file
func (s *service) OpenFile(ctx context.Context, p string) (io.ReadCloser, *storage.FileInfo, error) {
	p = strings.TrimPrefix(path.Clean("/"+p), "/")

	info, err := s.storage.GetFileInfo(ctx, p)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.storage.Open(ctx, p)
	if err != nil {
		return nil, nil, err
	}

	return rc, info, nil
}

// SubmitCustomerInfo stores the renter packet and photos, renders the
// contract and hands out the signed, pickup and dropoff links
func (s *service) SubmitCustomerInfo(
	ctx context.Context,
	link *linktoken.Payload,
	packet *model.CustomerPacket,
	photos map[string]*multipart.FileHeader,
) (*model.CustomerInfoResponse, error) {
	for field, fh := range photos {
		if err := storage.CheckPhoto(fh); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidUpload, field, err)
		}
	}

	base := baseFor(link)
	if base.CustomerEmail == "" {
		base.CustomerEmail = packet.Renter.Email
	}

	tokens, err := s.sequencer.Mint(linktoken.StepCustomerInfo, base)
	if err != nil {
		return nil, err
	}

	folder := link.FolderID
	packet.Photos = packet.Photos[:0]
	for _, field := range []string{model.PhotoLicenseFront, model.PhotoLicenseBack, model.PhotoInsuranceCard} {
		fh, ok := photos[field]
		if !ok || fh == nil {
			continue
		}
		stored, err := storage.UploadFile(ctx, s.storage, fh, path.Join(folder, "photos"), photoName(field))
		if err != nil {
			return nil, fmt.Errorf("failed to store %s: %w", field, err)
		}
		packet.Photos = append(packet.Photos, stored)
	}

	if err := s.saveDocument(ctx, folder, model.DocumentCustomerPacket, packet); err != nil {
		return nil, err
	}

	customerName := packet.Renter.FullName()
	if err := s.repo.UpdateCustomerName(ctx, folder, customerName); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, folder, model.RentalStatusInfoReceived); err != nil {
		return nil, err
	}

	rental := s.rentalFor(ctx, link)
	rental.CustomerName = customerName
	pdf, err := contract.Render(contract.Data{
		Company:   s.config.App.Name,
		Rental:    rental,
		Packet:    *packet,
		IssuedAt:  s.now(),
		Signature: true,
	})
	if err != nil {
		return nil, err
	}

	contractPath := path.Join(folder, contract.Filename)
	err = s.storage.Put(ctx, contractPath, bytes.NewReader(pdf), int64(len(pdf)), "application/pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to store contract: %w", err)
	}

	signedURL := s.linkURL(linktoken.PhaseSigned, tokens[linktoken.PhaseSigned])
	rentalData := s.rentalTemplateData(customerName, base)

	customerData := email.LinkTemplateData{
		RentalTemplateData: rentalData,
		LinkURL:            signedURL,
		ExpiresAt:          s.expiryLabel(linktoken.CustomerLinkTTL),
	}
	attachment := email.Attachment{Filename: contract.Filename, ContentType: "application/pdf", Data: pdf}
	s.sendEmail(ctx, []string{base.CustomerEmail}, email.TemplateContractReady, customerData, attachment)

	adminData := email.AdminLinksData{
		RentalTemplateData: rentalData,
		CustomerName:       customerName,
		PickupURL:          s.linkURL(linktoken.PhaseAdminPickup, tokens[linktoken.PhaseAdminPickup]),
		DropoffURL:         s.linkURL(linktoken.PhaseAdminDropoff, tokens[linktoken.PhaseAdminDropoff]),
		ExpiresAt:          s.expiryLabel(linktoken.AdminLinkTTL),
	}
	s.sendEmail(ctx, s.config.Admin.Recipients(), email.TemplateAdminLinks, adminData)
	s.sendSMS(ctx, fmt.Sprintf("%s sent driver and insurance info for the %s, %s to %s",
		customerName, link.Vehicle(), link.StartDate, link.EndDate))

	s.recordEvent(ctx, model.NewEvent(folder, model.EventCustomerInfo,
		fmt.Sprintf("Customer info received from %s", customerName),
		map[string]string{"contract": contractPath, "photos": fmt.Sprint(len(packet.Photos))},
	))

	resp := &model.CustomerInfoResponse{Message: "Thanks! Your rental contract has been emailed to you."}
	if u, err := s.storage.GetSignedURL(ctx, contractPath); err == nil {
		resp.ContractURL = u
	}
	return resp, nil
}

// SubmitPickupInstructions stores the admin's pickup directions and sends the
// renter the mileage-out link
func (s *service) SubmitPickupInstructions(ctx context.Context, link *linktoken.Payload, instructions *model.Instructions) (*model.StepResponse, error) {
	return s.submitInstructions(ctx, link, instructions, instructionStep{
		step:     linktoken.StepPickupInstructions,
		mints:    linktoken.PhaseOut,
		document: model.DocumentPickupInstructions,
		status:   model.RentalStatusPickupScheduled,
		template: email.TemplatePickupInstructions,
		event:    model.EventPickupScheduled,
		summary:  "Pickup instructions sent",
	})
}

// SubmitDropoffInstructions stores the admin's return directions and sends
// the renter the mileage-in link
func (s *service) SubmitDropoffInstructions(ctx context.Context, link *linktoken.Payload, instructions *model.Instructions) (*model.StepResponse, error) {
	return s.submitInstructions(ctx, link, instructions, instructionStep{
		step:     linktoken.StepDropoffInstructions,
		mints:    linktoken.PhaseIn,
		document: model.DocumentDropoffInstructions,
		status:   model.RentalStatusDropoffScheduled,
		template: email.TemplateDropoffInstructions,
		event:    model.EventDropoffScheduled,
		summary:  "Dropoff instructions sent",
	})
}

type instructionStep struct {
	step     linktoken.Step
	mints    linktoken.Phase
	document model.DocumentKind
	status   model.RentalStatus
	template string
	event    model.EventType
	summary  string
}

func (s *service) submitInstructions(ctx context.Context, link *linktoken.Payload, instructions *model.Instructions, st instructionStep) (*model.StepResponse, error) {
	tokens, err := s.sequencer.Mint(st.step, baseFor(link))
	if err != nil {
		return nil, err
	}

	folder := link.FolderID
	if err := s.saveDocument(ctx, folder, st.document, instructions); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, folder, st.status); err != nil {
		return nil, err
	}

	rental := s.rentalFor(ctx, link)
	data := email.InstructionsData{
		LinkTemplateData: email.LinkTemplateData{
			RentalTemplateData: s.rentalTemplateData(rental.CustomerName, *link),
			LinkURL:            s.linkURL(st.mints, tokens[st.mints]),
			ExpiresAt:          s.expiryLabel(linktoken.CustomerLinkTTL),
		},
		Address:      instructions.Address,
		Time:         instructions.Time,
		Instructions: instructions.Instructions,
		ContactPhone: instructions.ContactPhone,
	}
	s.sendEmail(ctx, []string{link.CustomerEmail}, st.template, data)

	s.recordEvent(ctx, model.NewEvent(folder, st.event, st.summary,
		map[string]string{"address": instructions.Address, "time": instructions.Time},
	))

	return &model.StepResponse{FolderID: folder, Message: st.summary}, nil
}

// SubmitMileageOut records the odometer and fuel level at pickup
func (s *service) SubmitMileageOut(ctx context.Context, link *linktoken.Payload, report *model.MileageReport, photo *multipart.FileHeader) (*model.StepResponse, error) {
	report.Review = nil
	return s.submitMileage(ctx, link, report, photo, mileageStep{
		document: model.DocumentMileageOut,
		status:   model.RentalStatusOut,
		event:    model.EventMileageOut,
		photo:    "mileage-out",
		title:    "Vehicle picked up",
	})
}

// SubmitMileageIn records the odometer, fuel level and review at return
func (s *service) SubmitMileageIn(ctx context.Context, link *linktoken.Payload, report *model.MileageReport, photo *multipart.FileHeader) (*model.StepResponse, error) {
	return s.submitMileage(ctx, link, report, photo, mileageStep{
		document: model.DocumentMileageIn,
		status:   model.RentalStatusReturned,
		event:    model.EventMileageIn,
		photo:    "mileage-in",
		title:    "Vehicle returned",
	})
}

type mileageStep struct {
	document model.DocumentKind
	status   model.RentalStatus
	event    model.EventType
	photo    string
	title    string
}

func (s *service) submitMileage(ctx context.Context, link *linktoken.Payload, report *model.MileageReport, photo *multipart.FileHeader, st mileageStep) (*model.StepResponse, error) {
	if photo != nil {
		if err := storage.CheckPhoto(photo); err != nil {
			return nil, fmt.Errorf("%w: photo: %v", ErrInvalidUpload, err)
		}
	}

	folder := link.FolderID
	if photo != nil {
		stored, err := storage.UploadFile(ctx, s.storage, photo, path.Join(folder, "photos"), st.photo)
		if err != nil {
			return nil, fmt.Errorf("failed to store odometer photo: %w", err)
		}
		report.PhotoPath = stored
	}

	// replays overwrite the previous report
	if err := s.saveDocument(ctx, folder, st.document, report); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, folder, st.status); err != nil {
		return nil, err
	}

	details := map[string]string{
		"mileage":    fmt.Sprint(report.Mileage),
		"fuel_level": report.FuelLevel,
	}
	if report.Notes != "" {
		details["notes"] = report.Notes
	}
	if report.PhotoPath != "" {
		details["photo"] = report.PhotoPath
	}
	if report.Review != nil {
		details["rating"] = fmt.Sprintf("%d/5", report.Review.Rating)
		if report.Review.Text != "" {
			details["review"] = report.Review.Text
		}
	}

	s.notifyAdmin(ctx, link, st.title, details)
	s.recordEvent(ctx, model.NewEvent(folder, st.event,
		fmt.Sprintf("%s at %d miles", st.title, report.Mileage), details))

	return &model.StepResponse{FolderID: folder, Message: "Mileage recorded"}, nil
}

// SubmitSignedContract stores the renter's signed contract
func (s *service) SubmitSignedContract(ctx context.Context, link *linktoken.Payload, file *multipart.FileHeader) (*model.StepResponse, error) {
	if file == nil {
		return nil, fmt.Errorf("%w: contract", ErrMissingFile)
	}
	if ext := strings.ToLower(path.Ext(file.Filename)); !signedContractTypes[ext] {
		return nil, fmt.Errorf("%w: contract: %w %q", ErrInvalidUpload, storage.ErrUnsupportedType, ext)
	}
	if err := storage.CheckUpload(file); err != nil {
		return nil, fmt.Errorf("%w: contract: %v", ErrInvalidUpload, err)
	}

	folder := link.FolderID
	stored, err := storage.UploadFile(ctx, s.storage, file, folder, "signed-contract")
	if err != nil {
		return nil, fmt.Errorf("failed to store signed contract: %w", err)
	}

	doc := model.SignedContract{
		Path:       stored,
		FileName:   file.Filename,
		Size:       file.Size,
		UploadedAt: s.now().UTC().Format(time.RFC3339),
	}
	if err := s.saveDocument(ctx, folder, model.DocumentSignedContract, doc); err != nil {
		return nil, err
	}

	details := map[string]string{"path": stored, "file_name": file.Filename}
	s.notifyAdmin(ctx, link, "Signed contract uploaded", details)
	s.recordEvent(ctx, model.NewEvent(folder, model.EventSignedContract, "Signed contract uploaded", details))

	return &model.StepResponse{FolderID: folder, Message: "Signed contract received"}, nil
}

func (s *service) saveDocument(ctx context.Context, folderID string, kind model.DocumentKind, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", kind, err)
	}

	return s.repo.SaveDocument(ctx, &model.Document{
		FolderID:  folderID,
		Kind:      kind,
		Data:      data,
		UpdatedAt: s.now().UTC(),
	})
}

// rentalFor returns the stored record, or one rebuilt from the link when the
// folder predates its record
func (s *service) rentalFor(ctx context.Context, link *linktoken.Payload) model.Rental {
	rental, err := s.repo.GetRental(ctx, link.FolderID)
	if err == nil {
		return *rental
	}
	if !errors.Is(err, rentalRepo.ErrNotFound) {
		logger.Errorf(err, "failed to load rental %s", link.FolderID)
	}

	return model.Rental{
		FolderID:      link.FolderID,
		VIN:           link.VIN,
		Make:          link.Make,
		Model:         link.Model,
		Color:         link.Color,
		LicensePlate:  link.LicensePlate,
		CustomerEmail: link.CustomerEmail,
		CostPerDay:    link.CostPerDay,
		StartDate:     link.StartDate,
		EndDate:       link.EndDate,
	}
}

func (s *service) linkURL(phase linktoken.Phase, token string) string {
	base := strings.TrimRight(s.config.App.BaseURL, "/")
	return fmt.Sprintf("%s/%s?%s", base, linkRoutes[phase], url.Values{"t": {token}}.Encode())
}

func (s *service) expiryLabel(ttl time.Duration) string {
	return s.now().Add(ttl).UTC().Format(expiryLayout)
}

func (s *service) rentalTemplateData(recipient string, p linktoken.Payload) email.RentalTemplateData {
	return email.RentalTemplateData{
		TemplateData: email.TemplateData{
			RecipientName: recipient,
			AppName:       s.config.App.Name,
			AppURL:        s.config.App.BaseURL,
		},
		FolderID:   p.FolderID,
		Vehicle:    p.Vehicle(),
		VIN:        p.VIN,
		StartDate:  p.StartDate,
		EndDate:    p.EndDate,
		CostPerDay: p.CostPerDay,
	}
}

// notifyAdmin emails and texts the admin about a completed step
func (s *service) notifyAdmin(ctx context.Context, link *linktoken.Payload, title string, details map[string]string) {
	data := email.AdminNotificationData{
		RentalTemplateData: s.rentalTemplateData("", *link),
		Title:              title,
		Details:            details,
	}
	s.sendEmail(ctx, s.config.Admin.Recipients(), email.TemplateAdminNotification, data)
	s.sendSMS(ctx, fmt.Sprintf("%s: %s (%s)", title, link.Vehicle(), link.FolderID))
}

// sendEmail runs after the step has been committed, so failures are logged
// and swallowed
func (s *service) sendEmail(ctx context.Context, to []string, template string, data any, attachments ...email.Attachment) {
	recipients := make([]string, 0, len(to))
	for _, addr := range to {
		if addr != "" {
			recipients = append(recipients, addr)
		}
	}
	if len(recipients) == 0 {
		logger.Warnf("no recipients for %s email", template)
		return
	}

	if err := s.email.SendTemplateEmail(ctx, recipients, template, data, attachments...); err != nil {
		logger.Errorf(err, "failed to send %s email", template)
	}
}

func (s *service) sendSMS(ctx context.Context, message string) {
	if err := email.SendSMS(ctx, s.email, s.config.Admin.SMSAddresses, message); err != nil {
		logger.Error(err, "failed to text admin")
	}
}

// recordEvent appends to the folder's event log and fans the event out to
// live admin feeds
func (s *service) recordEvent(ctx context.Context, event model.Event) {
	if err := s.repo.AppendEvent(ctx, &event); err != nil {
		logger.Errorf(err, "failed to append %s event", event.Type)
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.Errorf(err, "failed to publish %s event", event.Type)
	}
}

func payloadFromRental(r model.Rental) linktoken.Payload {
	return linktoken.Payload{
		VIN:           r.VIN,
		Make:          r.Make,
		Color:         r.Color,
		Model:         r.Model,
		LicensePlate:  r.LicensePlate,
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		CustomerEmail: r.CustomerEmail,
		CostPerDay:    r.CostPerDay,
		FolderID:      r.FolderID,
	}
}

// baseFor copies the business fields of a consumed link
func baseFor(link *linktoken.Payload) linktoken.Payload {
	base := *link
	base.Phase = linktoken.PhaseDraft
	base.CreatedAt = ""
	base.Exp = 0
	return base
}

// photoName turns a form field such as licenseFront into license-front
func photoName(field string) string {
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
