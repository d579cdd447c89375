package main

var (
	HeroTitle = `Building sleek products with Go & HTMX`

	HeroIntro = `I'm a full-stack developer focused on shipping fast, beautiful, and reliable
	experiences. Most of my projects start with a simple idea and turn into a chance to learn
	something new.`

	ContactHeadline = `Need a hand with your next build?`

	ContactBlurb = `Drop your details, share a bit about the project, or attach any supporting
	docs. I'll be back with ideas fast.`
)

// User-facing messages
const (
	msgLoginFailed      = "That combo unlocks nothing. Try again, code ranger."
	msgNeedAPIKey       = "Provide your admin API key first (from API .env)."
	msgAssetPartial     = "Project saved, but asset upload failed. You can retry from the project list below."
	msgProjectDeleted   = "Project deleted"
	msgResumeUpdated    = "Resume updated successfully!"
	msgInquirySent      = "Thanks! Your inquiry is in. I’ll reach out shortly."
	msgInquiryFailed    = "Failed to send inquiry. Please try again later."
	msgInvalidProject   = "Invalid project reference."
	msgProjectLoadError = "Could not load project. Try again later."
	msgProjectsLoadErr  = "Could not load projects. Try again later."
	msgInquiriesFailed  = "Failed to load inquiries."

	fallbackSaveProject   = "Failed to save project"
	fallbackDeleteProject = "Failed to delete project"
	fallbackUpdateProfile = "Failed to update profile"
	fallbackUploadAssets  = "Failed to upload assets"
	fallbackRemoveAsset   = "Failed to remove asset"
	fallbackUploadResume  = "Failed to upload resume"
)
