package linktoken

import (
	"fmt"
	"time"
)

const (
	// createdAtLayout matches JavaScript's Date.toISOString
	createdAtLayout = "2006-01-02T15:04:05.000Z07:00"

	// CustomerLinkTTL bounds links emailed to the renter
	CustomerLinkTTL = 7 * 24 * time.Hour
	// AdminLinkTTL bounds pickup and dropoff instruction links emailed to the admin
	AdminLinkTTL = 30 * 24 * time.Hour
)

// Step is one action of the rental workflow.
type Step string

const (
	StepCreateDraft         Step = "create_draft"
	StepCustomerInfo        Step = "customer_info"
	StepPickupInstructions  Step = "pickup_instructions"
	StepDropoffInstructions Step = "dropoff_instructions"
	StepMileageOut          Step = "mileage_out"
	StepMileageIn           Step = "mileage_in"
	StepSignedContract      Step = "signed_contract"
)

// Mint describes a token issued once a step completes.
type Mint struct {
	Phase Phase
	TTL   time.Duration
}

// Transition is one row of the workflow table.
type Transition struct {
	Step Step
	// Consumes is empty for steps authorized by an admin session instead of a link
	Consumes PhaseSet
	Required []Field
	Mints    []Mint
}

// Terminal reports whether the step mints nothing further.
func (t Transition) Terminal() bool {
	return len(t.Mints) == 0
}

// transitions is the whole workflow. The in token is minted together with the
// dropoff instructions, not chained from the out submission.
var transitions = map[Step]Transition{
	StepCreateDraft: {
		Step:  StepCreateDraft,
		Mints: []Mint{{Phase: PhaseDraft, TTL: CustomerLinkTTL}},
	},
	StepCustomerInfo: {
		Step:     StepCustomerInfo,
		Consumes: Accept(PhaseDraft),
		Required: []Field{FieldVIN, FieldFolderID, FieldStartDate, FieldEndDate},
		Mints: []Mint{
			{Phase: PhaseSigned, TTL: CustomerLinkTTL},
			{Phase: PhaseAdminPickup, TTL: AdminLinkTTL},
			{Phase: PhaseAdminDropoff, TTL: AdminLinkTTL},
		},
	},
	StepPickupInstructions: {
		Step:     StepPickupInstructions,
		Consumes: Accept(PhaseAdminPickup, phaseLegacyPickupAdmin),
		Required: []Field{FieldVIN, FieldFolderID, FieldStartDate},
		Mints:    []Mint{{Phase: PhaseOut, TTL: CustomerLinkTTL}},
	},
	StepDropoffInstructions: {
		Step:     StepDropoffInstructions,
		Consumes: Accept(PhaseAdminDropoff),
		Required: []Field{FieldVIN, FieldFolderID, FieldEndDate},
		Mints:    []Mint{{Phase: PhaseIn, TTL: CustomerLinkTTL}},
	},
	StepMileageOut: {
		Step:     StepMileageOut,
		Consumes: Accept(PhaseOut),
		Required: []Field{FieldVIN, FieldFolderID},
	},
	StepMileageIn: {
		Step:     StepMileageIn,
		Consumes: Accept(PhaseIn),
		Required: []Field{FieldVIN, FieldFolderID},
	},
	StepSignedContract: {
		Step:     StepSignedContract,
		Consumes: Accept(PhaseSigned),
		Required: []Field{FieldFolderID},
	},
}

// Lookup returns the transition of step.
func Lookup(step Step) (Transition, bool) {
	t, ok := transitions[step]
	return t, ok
}

// Sequencer validates consumed links and mints the next ones.
type Sequencer struct {
	codec     *Codec
	validator *Validator
	now       func() time.Time
}

// NewSequencer creates a sequencer over codec.
func NewSequencer(codec *Codec, opts ...Option) *Sequencer {
	o := newOptions(opts)
	return &Sequencer{
		codec:     codec,
		validator: &Validator{now: o.now},
		now:       o.now,
	}
}

// Consume decodes token and validates it for step. Nothing about the rental
// may be touched before Consume succeeds.
func (s *Sequencer) Consume(step Step, token string) (*Payload, error) {
	t, ok := transitions[step]
	if !ok {
		return nil, fmt.Errorf("unknown step %q", step)
	}
	if len(t.Consumes) == 0 {
		return nil, fmt.Errorf("step %q is not authorized by a link", step)
	}

	payload, err := s.codec.DecodePayload(token)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(payload, t.Consumes, t.Required...); err != nil {
		return nil, err
	}

	payload.Phase = payload.Phase.Canonical()
	return payload, nil
}

// Mint issues the tokens step hands out on completion, copying the business
// fields of base and stamping phase, createdAt and exp on each.
func (s *Sequencer) Mint(step Step, base Payload) (map[Phase]string, error) {
	t, ok := transitions[step]
	if !ok {
		return nil, fmt.Errorf("unknown step %q", step)
	}

	now := s.now()
	tokens := make(map[Phase]string, len(t.Mints))
	for _, m := range t.Mints {
		p := base
		p.Phase = m.Phase
		p.CreatedAt = now.UTC().Format(createdAtLayout)
		p.Exp = now.Add(m.TTL).UnixMilli()

		token, err := s.codec.Encode(p)
		if err != nil {
			return nil, fmt.Errorf("failed to mint %s token: %w", m.Phase, err)
		}
		tokens[m.Phase] = token
	}

	return tokens, nil
}
