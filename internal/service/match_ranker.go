package service

import (
	"fmt"
	"sort"
	"strings"

	"telemed-scheduling/internal/domain/entity"
)

// CategoryGeneralMedicine is the catch-all category: ranking for it never
// filters out zero-score doctors.
const CategoryGeneralMedicine = "General Medicine"

// Scoring weights. Score composition, in reason priority order:
// exact specialization match, symptom keyword coverage, bio mentions,
// experience tier.
const (
	scoreExactSpecialization = 15
	scorePerKeyword          = 7
	scorePerBioHit           = 3
	scoreSeniorExperience    = 3
	scoreMidExperience       = 1
)

// SymptomCategory maps a medical category to the symptom keywords patients
// use for it and the doctor specializations that can serve it.
type SymptomCategory struct {
	Category        string
	Keywords        []string
	Specializations []string
}

var symptomCategories = []SymptomCategory{
	{
		Category:        "General Medicine",
		Keywords:        []string{"fever", "headache", "fatigue", "nausea", "vomiting", "dizziness", "weakness", "cold", "flu", "cough", "sore throat", "body ache"},
		Specializations: []string{"General Medicine", "Internal Medicine", "Family Medicine"},
	},
	{
		Category:        "Cardiology",
		Keywords:        []string{"chest pain", "heart", "cardiac", "palpitations", "shortness of breath", "chest tightness", "irregular heartbeat", "heart attack", "angina", "hypertension", "blood pressure"},
		Specializations: []string{"Cardiology", "Cardiovascular Surgery", "Heart"},
	},
	{
		Category:        "Orthopedics",
		Keywords:        []string{"bone", "joint", "muscle", "back pain", "knee pain", "fracture", "sprain", "arthritis", "shoulder pain", "hip pain", "ankle", "wrist", "spine", "neck pain"},
		Specializations: []string{"Orthopedics", "Sports Medicine", "Bone", "Joint", "Spine"},
	},
	{
		Category:        "Dermatology",
		Keywords:        []string{"skin", "rash", "acne", "eczema", "psoriasis", "mole", "dermatitis", "itching", "dry skin", "spots", "blemishes", "allergic reaction", "hives"},
		Specializations: []string{"Dermatology", "Skin"},
	},
	{
		Category:        "Neurology",
		Keywords:        []string{"migraine", "seizure", "neurological", "nerve", "brain", "memory", "coordination", "headache", "dizziness", "vertigo", "numbness", "tingling", "stroke"},
		Specializations: []string{"Neurology", "Neurosurgery", "Brain", "Nerve"},
	},
	{
		Category:        "Gastroenterology",
		Keywords:        []string{"stomach", "digestive", "abdominal", "diarrhea", "constipation", "acid reflux", "heartburn", "bloating", "nausea", "stomach pain", "intestinal", "bowel"},
		Specializations: []string{"Gastroenterology", "Digestive", "Stomach"},
	},
	{
		Category:        "Pediatrics",
		Keywords:        []string{"child", "children", "baby", "infant", "toddler", "kid", "pediatric", "vaccination", "growth", "development"},
		Specializations: []string{"Pediatrics", "Child", "Children"},
	},
	{
		Category:        "Psychiatry",
		Keywords:        []string{"anxiety", "depression", "stress", "mental health", "mood", "panic", "psychological", "therapy", "counseling", "bipolar", "adhd"},
		Specializations: []string{"Psychiatry", "Mental Health", "Psychology"},
	},
	{
		Category:        "ENT",
		Keywords:        []string{"ear", "nose", "throat", "hearing", "sinus", "tonsils", "voice", "swallowing", "snoring", "ear infection", "nasal congestion"},
		Specializations: []string{"ENT", "Ear", "Nose", "Throat", "Otolaryngology"},
	},
	{
		Category:        "Ophthalmology",
		Keywords:        []string{"eye", "vision", "sight", "glasses", "contacts", "blurred vision", "eye pain", "red eyes", "cataracts", "glaucoma"},
		Specializations: []string{"Ophthalmology", "Eye", "Vision"},
	},
	{
		Category:        "Urology",
		Keywords:        []string{"kidney", "bladder", "urinary", "urine", "prostate", "urination", "uti", "kidney stones", "incontinence"},
		Specializations: []string{"Urology", "Kidney", "Bladder"},
	},
	{
		Category:        "Gynecology",
		Keywords:        []string{"women", "female", "period", "menstrual", "pregnancy", "gynecological", "reproductive", "ovarian", "cervical", "breast"},
		Specializations: []string{"Gynecology", "Obstetrics", "Women's Health"},
	},
}

// RankedDoctor is one scored entry in a ranking result.
type RankedDoctor struct {
	Doctor  entity.DoctorProfile
	Score   int
	Reasons []string
}

// MatchRanker scores doctors against free-text symptoms and a category for
// display ordering. Pure and deterministic: no I/O, no clock, same inputs
// always produce the same ordered output and reason strings.
type MatchRanker struct{}

func NewMatchRanker() *MatchRanker {
	return &MatchRanker{}
}

// Rank orders doctors by descending score, ties broken by input order.
// Zero-score doctors are dropped unless the category is General Medicine;
// if nothing survives the filter, the full list is returned sorted by
// experience instead.
func (r *MatchRanker) Rank(doctors []entity.DoctorProfile, symptoms, category string) []RankedDoctor {
	lowerSymptoms := strings.ToLower(symptoms)

	ranked := make([]RankedDoctor, 0, len(doctors))
	for _, doctor := range doctors {
		score, reasons := r.scoreDoctor(&doctor, lowerSymptoms, category)
		if score == 0 && !strings.EqualFold(category, CategoryGeneralMedicine) {
			continue
		}
		ranked = append(ranked, RankedDoctor{Doctor: doctor, Score: score, Reasons: reasons})
	}

	if len(ranked) == 0 {
		return r.fallbackByExperience(doctors)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// DetectCategory picks the category whose keywords best cover the symptoms
// text. Longer keywords weigh more. Defaults to General Medicine.
func (r *MatchRanker) DetectCategory(symptoms string) string {
	lowerSymptoms := strings.ToLower(symptoms)
	best := CategoryGeneralMedicine
	bestScore := 0

	for _, cat := range symptomCategories {
		score := 0
		for _, keyword := range cat.Keywords {
			if strings.Contains(lowerSymptoms, keyword) {
				score += len(keyword)
			}
		}
		if score > bestScore {
			best = cat.Category
			bestScore = score
		}
	}
	return best
}

func (r *MatchRanker) scoreDoctor(doctor *entity.DoctorProfile, lowerSymptoms, category string) (int, []string) {
	var score int
	var reasons []string

	if strings.EqualFold(doctor.Specialization, category) {
		score += scoreExactSpecialization
		reasons = append(reasons, fmt.Sprintf("Specializes in %s", category))
	}

	// Best keyword coverage among the categories this doctor's
	// specialization can serve.
	var bestCategory string
	var matchedKeywords []string
	for _, cat := range symptomCategories {
		if !categoryServes(&cat, doctor.Specialization) {
			continue
		}
		var matched []string
		for _, keyword := range cat.Keywords {
			if strings.Contains(lowerSymptoms, keyword) {
				matched = append(matched, keyword)
			}
		}
		if len(matched) > len(matchedKeywords) {
			bestCategory = cat.Category
			matchedKeywords = matched
		}
	}
	if len(matchedKeywords) > 0 {
		score += len(matchedKeywords) * scorePerKeyword
		reasons = append(reasons, fmt.Sprintf("Covers %d reported symptom(s) in %s", len(matchedKeywords), bestCategory))
	}

	lowerBio := strings.ToLower(doctor.Bio)
	bioHits := 0
	for _, keyword := range matchedKeywords {
		if strings.Contains(lowerBio, keyword) {
			bioHits++
		}
	}
	if bioHits > 0 {
		score += bioHits * scorePerBioHit
		reasons = append(reasons, fmt.Sprintf("Profile mentions %d of your symptom(s)", bioHits))
	}

	switch {
	case doctor.ExperienceYears >= 10:
		score += scoreSeniorExperience
		reasons = append(reasons, "10+ years of experience")
	case doctor.ExperienceYears >= 5:
		score += scoreMidExperience
		reasons = append(reasons, "5+ years of experience")
	}

	return score, reasons
}

func (r *MatchRanker) fallbackByExperience(doctors []entity.DoctorProfile) []RankedDoctor {
	ranked := make([]RankedDoctor, len(doctors))
	for i, doctor := range doctors {
		ranked[i] = RankedDoctor{
			Doctor:  doctor,
			Reasons: []string{fmt.Sprintf("%d years of experience", doctor.ExperienceYears)},
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Doctor.ExperienceYears > ranked[j].Doctor.ExperienceYears
	})
	return ranked
}

func categoryServes(cat *SymptomCategory, specialization string) bool {
	lowerSpec := strings.ToLower(specialization)
	for _, s := range cat.Specializations {
		lowerCat := strings.ToLower(s)
		if strings.Contains(lowerSpec, lowerCat) || strings.Contains(lowerCat, lowerSpec) {
			return true
		}
	}
	return false
}
