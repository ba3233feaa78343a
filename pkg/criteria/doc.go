/*
Package criteria loads the selection criteria the settings database is built against.

Two formats are accepted. The text format declares one criterion per line:

	InclusiveCriterion Device : Speaker Headset Earpiece
	ExclusiveCriterion Mode   : Normal InCall

The XML format pairs a criteria document listing <criterion name="" type=""/> elements
with a criterion-types document listing
<criterion_type name="" type="inclusive|exclusive" values="v1,v2"/> elements.

The package also rewrites criterion-types documents from an audio policy routes file
(see FillRouteTypes).
*/
package criteria
